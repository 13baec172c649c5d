package vision

import (
	"errors"
	"fmt"
	"image"
	"math"
	"os"

	"gocv.io/x/gocv"

	"facegate/internal/access"
	"facegate/internal/config"
	"facegate/internal/logger"
)

const (
	// DetectionConfidence is the minimum detector confidence for a region
	// to count as a face.
	DetectionConfidence = 0.5

	// alignSize is the input raster of the embedding network.
	alignSize = 96

	// alignPadding grows each detected region before cropping, so the
	// embedding sees some context around the face.
	alignPadding = 0.2
)

// Frame wraps a gocv Mat and owns its release.
type Frame struct {
	mat gocv.Mat
}

// NewFrame takes ownership of mat.
func NewFrame(mat gocv.Mat) *Frame {
	return &Frame{mat: mat}
}

// Mat exposes the underlying pixel buffer. The frame keeps ownership.
func (f *Frame) Mat() gocv.Mat {
	return f.mat
}

// Close releases the pixel buffer.
func (f *Frame) Close() error {
	return f.mat.Close()
}

// Descriptor is an L2-normalized face embedding produced by Align.
type Descriptor struct {
	vec []float32
}

// Close releases the descriptor.
func (d *Descriptor) Close() error {
	d.vec = nil
	return nil
}

// Engine runs face detection and embedding through OpenCV DNN: an SSD face
// detector plus an OpenFace embedding network.
type Engine struct {
	detector gocv.Net
	embedder gocv.Net
	enrollW  int
	enrollH  int
	logger   *logger.Logger
}

// NewEngine loads both networks. Missing model files fail initialization;
// the caller decides how to degrade.
func NewEngine(cfg *config.Config, logger *logger.Logger) (*Engine, error) {
	for _, path := range []string{cfg.DetectorModelPath, cfg.DetectorConfigPath, cfg.EmbedderModelPath} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("model file not found: %s", path)
		}
	}

	detector := gocv.ReadNet(cfg.DetectorModelPath, cfg.DetectorConfigPath)
	if detector.Empty() {
		return nil, fmt.Errorf("failed to load detector network")
	}

	embedder := gocv.ReadNetFromTorch(cfg.EmbedderModelPath)
	if embedder.Empty() {
		detector.Close()
		return nil, fmt.Errorf("failed to load embedder network")
	}

	for _, net := range []*gocv.Net{&detector, &embedder} {
		if err := net.SetPreferableBackend(gocv.NetBackendDefault); err != nil {
			detector.Close()
			embedder.Close()
			return nil, fmt.Errorf("failed to set preferable backend: %w", err)
		}
		if err := net.SetPreferableTarget(gocv.NetTargetCPU); err != nil {
			detector.Close()
			embedder.Close()
			return nil, fmt.Errorf("failed to set preferable target: %w", err)
		}
	}

	logger.Info("Detection and embedding networks initialized")

	return &Engine{
		detector: detector,
		embedder: embedder,
		enrollW:  cfg.EnrollmentWidth,
		enrollH:  cfg.EnrollmentHeight,
		logger:   logger,
	}, nil
}

// Decode decodes stored image bytes and resizes them to the enrollment
// raster. The caller owns the returned frame.
func (e *Engine) Decode(data []byte) (access.Frame, error) {
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if mat.Empty() {
		mat.Close()
		return nil, errors.New("decoded image is empty")
	}

	if mat.Cols() != e.enrollW || mat.Rows() != e.enrollH {
		gocv.Resize(mat, &mat, image.Pt(e.enrollW, e.enrollH), 0, 0, gocv.InterpolationLinear)
	}

	return NewFrame(mat), nil
}

// Detect returns face regions in detection order. Zero regions is a valid
// result, not an error.
func (e *Engine) Detect(f access.Frame) ([]image.Rectangle, error) {
	mat, err := frameMat(f)
	if err != nil {
		return nil, err
	}

	blob := gocv.BlobFromImage(mat, 1.0, image.Pt(300, 300), gocv.NewScalar(104, 177, 123, 0), false, false)
	defer blob.Close()

	e.detector.SetInput(blob, "")

	output := e.detector.Forward("")
	defer output.Close()

	// SSD output rows are [batch, class, confidence, x1, y1, x2, y2].
	reshaped := output.Reshape(1, output.Total()/7)
	defer reshaped.Close()

	var regions []image.Rectangle
	for i := 0; i < reshaped.Rows(); i++ {
		confidence := reshaped.GetFloatAt(i, 2)
		if confidence <= DetectionConfidence {
			continue
		}

		x1 := int(reshaped.GetFloatAt(i, 3) * float32(mat.Cols()))
		y1 := int(reshaped.GetFloatAt(i, 4) * float32(mat.Rows()))
		x2 := int(reshaped.GetFloatAt(i, 5) * float32(mat.Cols()))
		y2 := int(reshaped.GetFloatAt(i, 6) * float32(mat.Rows()))

		region := image.Rect(x1, y1, x2, y2).Intersect(image.Rect(0, 0, mat.Cols(), mat.Rows()))
		if region.Empty() {
			continue
		}
		regions = append(regions, region)
	}

	return regions, nil
}

// Align crops the padded region, resizes it to the embedding raster and runs
// the embedding network. The result is the candidate's descriptor.
func (e *Engine) Align(f access.Frame, region image.Rectangle) (access.AlignedFace, error) {
	mat, err := frameMat(f)
	if err != nil {
		return nil, err
	}

	padded := padRegion(region, alignPadding).Intersect(image.Rect(0, 0, mat.Cols(), mat.Rows()))
	if padded.Empty() {
		return nil, errors.New("face region is outside the frame")
	}

	crop := mat.Region(padded)
	defer crop.Close()

	aligned := gocv.NewMat()
	defer aligned.Close()
	gocv.Resize(crop, &aligned, image.Pt(alignSize, alignSize), 0, 0, gocv.InterpolationLinear)

	blob := gocv.BlobFromImage(aligned, 1.0/255.0, image.Pt(alignSize, alignSize), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	e.embedder.SetInput(blob, "")

	output := e.embedder.Forward("")
	defer output.Close()

	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("failed to read embedding output: %w", err)
	}

	vec := make([]float32, len(data))
	copy(vec, data)
	normalize(vec)

	return &Descriptor{vec: vec}, nil
}

// Similarity is the cosine similarity of two descriptors. Both inputs are
// L2-normalized by Align, so this reduces to a dot product.
func (e *Engine) Similarity(face, reference access.AlignedFace) (float64, error) {
	a, ok := face.(*Descriptor)
	if !ok || a.vec == nil {
		return 0, errors.New("unsupported aligned face representation")
	}
	b, ok := reference.(*Descriptor)
	if !ok || b.vec == nil {
		return 0, errors.New("unsupported reference representation")
	}
	if len(a.vec) != len(b.vec) {
		return 0, fmt.Errorf("descriptor size mismatch: %d vs %d", len(a.vec), len(b.vec))
	}

	var dot float64
	for i := range a.vec {
		dot += float64(a.vec[i]) * float64(b.vec[i])
	}
	return dot, nil
}

// Close releases both networks.
func (e *Engine) Close() error {
	if err := e.detector.Close(); err != nil {
		return err
	}
	return e.embedder.Close()
}

func frameMat(f access.Frame) (gocv.Mat, error) {
	vf, ok := f.(*Frame)
	if !ok {
		return gocv.Mat{}, errors.New("unsupported frame type")
	}
	mat := vf.Mat()
	if mat.Empty() {
		return gocv.Mat{}, errors.New("frame is empty")
	}
	return mat, nil
}

func padRegion(region image.Rectangle, padding float64) image.Rectangle {
	dx := int(float64(region.Dx()) * padding / 2)
	dy := int(float64(region.Dy()) * padding / 2)
	return image.Rect(region.Min.X-dx, region.Min.Y-dy, region.Max.X+dx, region.Max.Y+dy)
}

func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
}

// Unavailable is an Engine whose initialization failed. Every call reports
// the original failure; the loop keeps running and skips each cycle.
type Unavailable struct {
	Reason error
}

func (u Unavailable) Decode(data []byte) (access.Frame, error) {
	return nil, u.err()
}

func (u Unavailable) Detect(f access.Frame) ([]image.Rectangle, error) {
	return nil, u.err()
}

func (u Unavailable) Align(f access.Frame, region image.Rectangle) (access.AlignedFace, error) {
	return nil, u.err()
}

func (u Unavailable) Similarity(face, reference access.AlignedFace) (float64, error) {
	return 0, u.err()
}

func (u Unavailable) err() error {
	return fmt.Errorf("vision engine unavailable: %w", u.Reason)
}
