package sort

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tiedye/pkg/types"
)

// maxRenameAttempts bounds the rename counter loop. The set of existing names
// is finite in a single-process run, so hitting the bound means something else
// is writing into the target folder.
const maxRenameAttempts = 1000

// Resolver decides the final destination path for a matched file under the
// configured collision policy.
type Resolver struct {
	policy types.CollisionPolicy
}

// NewResolver creates a resolver for the given policy.
func NewResolver(policy types.CollisionPolicy) *Resolver {
	return &Resolver{policy: policy}
}

// Resolve computes the destination for source inside targetDir.
//
// A non-empty status means the file is done without a move: the resolver
// short-circuits to SkippedSameLocation when the file already lives in the
// target folder (before any collision check), and to SkippedCollision under
// the skip policy when the destination exists.
func (r *Resolver) Resolve(source, targetDir string) (dest string, status types.OutcomeStatus, err error) {
	if filepath.Clean(filepath.Dir(source)) == filepath.Clean(targetDir) {
		return "", types.StatusSkippedSameLocation, nil
	}

	dest = filepath.Join(targetDir, filepath.Base(source))
	if !exists(dest) {
		return dest, "", nil
	}

	switch r.policy {
	case types.CollisionSkip:
		return "", types.StatusSkippedCollision, nil
	case types.CollisionOverwrite:
		return dest, "", nil
	case types.CollisionRename:
		dest, err = uniqueDestination(dest)
		return dest, "", err
	default:
		return "", "", fmt.Errorf("unknown collision policy: %q", r.policy)
	}
}

// uniqueDestination generates candidates {stem}({n}){suffix} for n = 1, 2, …
// until an unused path is found.
func uniqueDestination(dest string) (string, error) {
	suffix := filepath.Ext(dest)
	stem := strings.TrimSuffix(dest, suffix)

	for n := 1; n <= maxRenameAttempts; n++ {
		candidate := fmt.Sprintf("%s(%d)%s", stem, n, suffix)
		if !exists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free name for %s after %d attempts", dest, maxRenameAttempts)
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
