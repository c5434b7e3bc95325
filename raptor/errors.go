package raptor

import (
	"github.com/pkg/errors"
)

var (
	ErrSearchTimeout        = errors.New("raptor: search timed out")
	ErrInvalidConfiguration = errors.New("raptor: invalid configuration")
	ErrDataInconsistency    = errors.New("raptor: inconsistent transit data")
)
