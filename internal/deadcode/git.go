package deadcode

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/reachscan/reachscan/domain"
)

// gitHistoryCap bounds the git-history enrichment to the first N dead files
// sorted by size (spec.md §4.7); beyond it git log calls stop and every
// remaining record gets GitHistory{Available:false, Reason:"..."}.
const gitHistoryCap = 200

type gitHistorian struct {
	root      string
	available bool
}

func newGitHistorian(root string, disabled bool) *gitHistorian {
	h := &gitHistorian{root: root}
	if disabled {
		return h
	}
	if _, err := os.Stat(filepath.Join(root, ".git")); err != nil {
		return h
	}
	if _, err := exec.LookPath("git"); err != nil {
		return h
	}
	h.available = true
	return h
}

func (h *gitHistorian) lookup(relPath string, rank int) domain.GitHistory {
	if !h.available {
		return domain.GitHistory{Available: false, Reason: "git unavailable"}
	}
	if rank >= gitHistoryCap {
		return domain.GitHistory{Available: false, Reason: "git history unavailable beyond the first 200 files"}
	}

	lastLog, err := h.log(relPath, "-1", "--format=%H|%ai|%an")
	if err != nil || lastLog == "" {
		return domain.GitHistory{Available: false, Reason: "file untracked"}
	}
	lastFields := strings.SplitN(lastLog, "|", 3)
	if len(lastFields) != 3 {
		return domain.GitHistory{Available: false, Reason: "unexpected git log output"}
	}

	createdLog, err := h.log(relPath, "--diff-filter=A", "--format=%H")
	created := ""
	if err == nil {
		lines := strings.Split(strings.TrimSpace(createdLog), "\n")
		if len(lines) > 0 {
			created = lines[len(lines)-1]
		}
	}
	if created == "" {
		created = lastFields[0]
	}

	modTime, err := time.Parse("2006-01-02 15:04:05 -0700", lastFields[1])
	days := 0
	if err == nil {
		days = int(time.Since(modTime).Hours() / 24)
	}

	return domain.GitHistory{
		Available:         true,
		LastModified:      lastFields[1],
		CreatedCommit:     created,
		Author:            lastFields[2],
		DaysSinceModified: days,
	}
}

func (h *gitHistorian) log(relPath string, args ...string) (string, error) {
	full := append([]string{"log"}, args...)
	full = append(full, "--", relPath)
	cmd := exec.Command("git", full...)
	cmd.Dir = h.root
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// readHead returns up to n bytes from the start of root/relPath, used by
// the preserve-marker scan (spec.md §4.7).
func readHead(root, relPath string, n int) ([]byte, error) {
	f, err := os.Open(filepath.Join(root, relPath))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:read], nil
}
