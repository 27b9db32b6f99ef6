// core/seed/policy.go
package seed

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownPolicy      = errors.New("seed: unknown seed policy")
	ErrInvalidK           = errors.New("seed: invalid k-mer length")
	ErrInvalidThreshold   = errors.New("seed: threshold outside [0,1]")
	ErrCombinatorialLimit = errors.New("seed: window expands to too many k-mers")
)

// MaxK is the longest k-mer that fits the 2-bit packed uint64 codes.
const MaxK = 32

// DefaultMaxKmersPerWindow caps the threshold expansion of one window (4^6).
const DefaultMaxKmersPerWindow = 4096

// Policy selects how the index is derived from the matrix.
type Policy int

const (
	Consensus Policy = iota
	Threshold
)

func (p Policy) String() string {
	switch p {
	case Consensus:
		return "consensus"
	case Threshold:
		return "threshold"
	}
	return "Policy(" + strconv.Itoa(int(p)) + ")"
}

// ParsePolicy resolves a policy name. "consensus_seed_seq" is accepted as an
// alias of consensus.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "consensus", "consensus_seed_seq":
		return Consensus, nil
	case "threshold":
		return Threshold, nil
	}
	return 0, fmt.Errorf("%w %q (want consensus | threshold)", ErrUnknownPolicy, name)
}

// Set implements pflag.Value.
func (p *Policy) Set(s string) error {
	v, err := ParsePolicy(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p *Policy) Type() string { return "policy" }

// BuildOptions parameterizes Build.
type BuildOptions struct {
	Policy    Policy
	K         int
	Threshold float64 // Threshold policy only

	// MaxKmersPerWindow bounds the cartesian product of one window under the
	// Threshold policy. 0 means DefaultMaxKmersPerWindow.
	MaxKmersPerWindow int
}

func (o BuildOptions) validate() error {
	if o.K <= 0 || o.K > MaxK {
		return fmt.Errorf("%w: k=%d (want 1..%d)", ErrInvalidK, o.K, MaxK)
	}
	switch o.Policy {
	case Consensus:
	case Threshold:
		if o.Threshold < 0 || o.Threshold > 1 {
			return fmt.Errorf("%w: %g", ErrInvalidThreshold, o.Threshold)
		}
		if o.MaxKmersPerWindow < 0 {
			return fmt.Errorf("seed: max k-mers per window must be >= 0, got %d", o.MaxKmersPerWindow)
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnknownPolicy, o.Policy)
	}
	return nil
}
