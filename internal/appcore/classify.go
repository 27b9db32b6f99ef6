package appcore

import (
	"context"
	"errors"

	"pblast/core/engine"
	"pblast/core/probmat"
	"pblast/core/scoring"
	"pblast/core/seed"
	"pblast/internal/indexio"
	"pblast/internal/matrixio"
	"pblast/internal/querygen"
)

// inputErrors are caller mistakes rather than runtime failures.
var inputErrors = []error{
	probmat.ErrEmpty, probmat.ErrRowSum, probmat.ErrRowRange, probmat.ErrBadSymbol,
	scoring.ErrUnknownMethod, scoring.ErrBadSubstitution,
	seed.ErrUnknownPolicy, seed.ErrInvalidK, seed.ErrInvalidThreshold, seed.ErrCombinatorialLimit,
	engine.ErrConfig, engine.ErrIndexMismatch,
	matrixio.ErrBadMagic, matrixio.ErrChecksum, matrixio.ErrFormat,
	indexio.ErrBadMagic, indexio.ErrChecksum, indexio.ErrFingerprint,
	querygen.ErrOptions,
}

// Classify maps an error to an exit code.
func Classify(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	}
	for _, target := range inputErrors {
		if errors.Is(err, target) {
			return ExitUsage
		}
	}
	return ExitIO
}
