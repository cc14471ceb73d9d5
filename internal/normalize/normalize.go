// Package normalize turns a drawing surface into the 28×28 intensity grid
// the digit classifier was trained on.
package normalize

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strconv"

	"golang.org/x/image/draw"
)

// Size is the side of the classifier input grid.
const Size = 28

var ErrUnknownResample = errors.New("normalize: unknown resample filter")

// Box is an inclusive cell range on the Size×Size grid.
type Box struct {
	MinX, MaxX int
	MinY, MaxY int
}

// EmptyBox is the box before any inked cell has been seen.
func EmptyBox() Box {
	return Box{MinX: Size - 1, MaxX: 0, MinY: Size - 1, MaxY: 0}
}

func (b Box) Empty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

// Width and Height are max minus min, so a single cell has zero extent.
func (b Box) Width() int  { return b.MaxX - b.MinX }
func (b Box) Height() int { return b.MaxY - b.MinY }

func (b Box) include(x, y int) Box {
	return Box{
		MinX: min(b.MinX, x), MaxX: max(b.MaxX, x),
		MinY: min(b.MinY, y), MaxY: max(b.MaxY, y),
	}
}

// Tensor holds intensities in [0,1] in column-major order: cell (x, y) is
// at index x*Size+y.
type Tensor [Size * Size]float64

func (t *Tensor) At(x, y int) float64 {
	return t[x*Size+y]
}

func (t *Tensor) set(x, y int, v float64) {
	t[x*Size+y] = v
}

// Features is the tensor as one named record, ready for the classifier.
type Features struct {
	Names  []string
	Values []float64
}

var featureNames = func() []string {
	names := make([]string, 0, Size*Size)
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			names = append(names, strconv.Itoa(x)+"_"+strconv.Itoa(y))
		}
	}
	return names
}()

// FeatureNames returns the "x_y" column names in tensor order.
func FeatureNames() []string {
	out := make([]string, len(featureNames))
	copy(out, featureNames)
	return out
}

func (t *Tensor) Features() Features {
	values := make([]float64, len(t))
	copy(values, t[:])
	return Features{Names: featureNames, Values: values}
}

// Normalizer runs the downsample, crop, center and invert steps.
type Normalizer struct {
	interp draw.Interpolator
}

func New(resample string) (*Normalizer, error) {
	var interp draw.Interpolator
	switch resample {
	case "", "nearest":
		interp = draw.NearestNeighbor
	case "approx-bilinear":
		interp = draw.ApproxBiLinear
	case "bilinear":
		interp = draw.BiLinear
	case "catmull-rom":
		interp = draw.CatmullRom
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownResample, resample)
	}
	return &Normalizer{interp: interp}, nil
}

// Normalize converts surface into a tensor. ok is false when nothing on the
// surface survives downsampling as ink.
func (n *Normalizer) Normalize(surface image.Image) (t Tensor, ok bool) {
	small := n.Downsample(surface)
	box := BoundingBox(small)
	if box.Empty() {
		return t, false
	}
	return Intensities(Center(small, box)), true
}

// Downsample scales src onto a white Size×Size image.
func (n *Normalizer) Downsample(src image.Image) *image.RGBA {
	dst := blank()
	n.interp.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// BoundingBox covers every cell whose red channel is not 255. Strokes are
// grayscale, so red alone tells ink from paper.
func BoundingBox(img *image.RGBA) Box {
	box := EmptyBox()
	b := img.Bounds()
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			if img.RGBAAt(b.Min.X+x, b.Min.Y+y).R != 255 {
				box = box.include(x, y)
			}
		}
	}
	return box
}

// Center pastes the box contents onto a blank grid at
// ((Size-width)/2, (Size-height)/2).
func Center(img *image.RGBA, box Box) *image.RGBA {
	dst := blank()
	if box.Empty() {
		return dst
	}
	b := img.Bounds()
	src := image.Rect(box.MinX, box.MinY, box.MaxX+1, box.MaxY+1).Add(b.Min)
	offset := image.Pt((Size-box.Width())/2, (Size-box.Height())/2)
	draw.Copy(dst, offset, img, src, draw.Src, nil)
	return dst
}

// Intensities maps each cell to 1 - red/255, so ink goes to 1 and paper to 0.
func Intensities(img *image.RGBA) Tensor {
	var t Tensor
	b := img.Bounds()
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			t.set(x, y, 1-float64(img.RGBAAt(b.Min.X+x, b.Min.Y+y).R)/255)
		}
	}
	return t
}

func blank() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Size, Size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}
