package assemble

import "fmt"

// PickAny returns a k-mer that's still in the index. It's the
// lexicographically smallest one so runs are reproducible
func (a *Assembler) PickAny() (string, error) {
	seed, ok := a.index.First()
	if !ok {
		return "", ErrEmpty
	}
	return seed, nil
}

// ExtendForward grows contig one base at a time for as long as its last
// k-1 bases are followed by exactly one base in the index. Each k-mer
// used is removed from the index along with its reverse complement.
//
// The returned Stop says whether the walk ended at a (k-1)-mer with no
// extension or with several
func (a *Assembler) ExtendForward(contig string) (string, Stop, error) {
	if len(contig) < a.k-1 {
		return "", DeadEnd, fmt.Errorf("contig %s is shorter than k-1=%d", contig, a.k-1)
	}

	buf := []byte(contig)
	for {
		suffix := string(buf[len(buf)-(a.k-1):])

		node := a.index.Locate(suffix)
		if node == nil || node.Degree() == 0 {
			return string(buf), DeadEnd, nil
		}
		if node.Degree() > 1 {
			return string(buf), Branch, nil
		}

		next := node.Symbols()[0]
		if err := a.consume(suffix + string(next)); err != nil {
			return string(buf), DeadEnd, err
		}
		buf = append(buf, next)
	}
}

// consume removes a k-mer and its reverse complement from the index.
// Both are present or neither is, so a failure means the index is corrupt
func (a *Assembler) consume(km string) error {
	rc, err := ReverseComplement(km)
	if err != nil {
		return err
	}
	if err := a.index.RemoveAll(km); err != nil {
		return fmt.Errorf("failed to consume k-mer: %w", err)
	}
	if rc == km {
		return nil // only possible for even k
	}
	if err := a.index.RemoveAll(rc); err != nil {
		return fmt.Errorf("failed to consume reverse complement of %s: %w", km, err)
	}
	return nil
}
