package git

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"archmap/internal/diff"
)

// ChangedFiles runs `git diff --name-status` against baseRef in dir and
// classifies the result into a changeset. Renames count as a removal of
// the old path and an addition of the new one.
func ChangedFiles(dir, baseRef string) (diff.Changeset, error) {
	cmd := exec.Command("git", "diff", "--name-status", "-M", baseRef)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return diff.Changeset{}, fmt.Errorf("git diff failed: %w", err)
	}

	return parseNameStatus(output)
}

func parseNameStatus(output []byte) (diff.Changeset, error) {
	var changes diff.Changeset

	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			continue
		}

		status := fields[0]
		switch {
		case strings.HasPrefix(status, "A"):
			changes.Added = append(changes.Added, fields[1])
		case strings.HasPrefix(status, "M"):
			changes.Modified = append(changes.Modified, fields[1])
		case strings.HasPrefix(status, "D"):
			changes.Removed = append(changes.Removed, fields[1])
		case strings.HasPrefix(status, "R"):
			// R<score>\told\tnew
			if len(fields) < 3 {
				return diff.Changeset{}, fmt.Errorf("malformed rename entry: %q", line)
			}
			changes.Removed = append(changes.Removed, fields[1])
			changes.Added = append(changes.Added, fields[2])
		}
	}
	if err := scanner.Err(); err != nil {
		return diff.Changeset{}, fmt.Errorf("failed to scan git output: %w", err)
	}

	return changes, nil
}
