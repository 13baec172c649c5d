package access

import (
	"errors"
	"fmt"
)

// EnrollmentErrorKind classifies why enrollment failed.
type EnrollmentErrorKind int

const (
	StorageUnavailable EnrollmentErrorKind = iota
	DecodeFailed
	NoFaceFound
	AlignFailed
)

func (k EnrollmentErrorKind) String() string {
	switch k {
	case StorageUnavailable:
		return "storage unavailable"
	case DecodeFailed:
		return "decode failed"
	case NoFaceFound:
		return "no face found"
	case AlignFailed:
		return "align failed"
	}
	return "unknown"
}

// EnrollmentError reports a failed attempt to build the reference face.
type EnrollmentError struct {
	Kind EnrollmentErrorKind
	Err  error
}

func (e *EnrollmentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("enrollment: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("enrollment: %s", e.Kind)
}

func (e *EnrollmentError) Unwrap() error {
	return e.Err
}

// LoadReference builds the reference face from a stored image. The image must
// contain at least one detectable face; when the detector returns several
// regions the first in detection order is used, matching the run-time
// recognition policy. The caller owns the returned face and must Close it.
func LoadReference(store Storage, engine Engine, path string) (AlignedFace, error) {
	data, err := store.ReadBytes(path)
	if err != nil {
		return nil, &EnrollmentError{Kind: StorageUnavailable, Err: err}
	}

	img, err := engine.Decode(data)
	if err != nil {
		return nil, &EnrollmentError{Kind: DecodeFailed, Err: err}
	}
	defer img.Close()

	regions, err := engine.Detect(img)
	if err != nil {
		return nil, &EnrollmentError{Kind: NoFaceFound, Err: err}
	}
	if len(regions) == 0 {
		return nil, &EnrollmentError{Kind: NoFaceFound, Err: errors.New("no face detected in enrollment image")}
	}

	ref, err := engine.Align(img, regions[0])
	if err != nil {
		return nil, &EnrollmentError{Kind: AlignFailed, Err: err}
	}

	return ref, nil
}
