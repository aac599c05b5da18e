package navigation

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

// Stat returns the lstat view of path: ls(1) type character,
// permission string without the type, size and symlink target.
func Stat(path string) (domain.FileStat, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return domain.FileStat{}, fmt.Errorf("stat %s: %w", path, err)
	}

	st := domain.FileStat{
		Type:  typeChar(fi.Mode()),
		Perms: permString(fi.Mode()),
		Size:  fi.Size(),
	}
	if fi.Mode()&fs.ModeSymlink != 0 {
		if dest, err := os.Readlink(path); err == nil {
			st.SymlinkDest = &dest
		}
	}
	return st, nil
}

func typeChar(m fs.FileMode) string {
	switch {
	case m&fs.ModeSymlink != 0:
		return "l"
	case m.IsDir():
		return "d"
	case m&fs.ModeCharDevice != 0:
		return "c"
	case m&fs.ModeDevice != 0:
		return "b"
	case m&fs.ModeNamedPipe != 0:
		return "p"
	case m&fs.ModeSocket != 0:
		return "s"
	default:
		return "-"
	}
}

// permString renders rwx triplets, including setuid, setgid and sticky bits.
func permString(m fs.FileMode) string {
	b := []byte(strings.TrimPrefix(m.Perm().String(), "-"))
	if m&fs.ModeSetuid != 0 {
		b[2] = specialBit(b[2], 's')
	}
	if m&fs.ModeSetgid != 0 {
		b[5] = specialBit(b[5], 's')
	}
	if m&fs.ModeSticky != 0 {
		b[8] = specialBit(b[8], 't')
	}
	return string(b)
}

func specialBit(exec byte, c byte) byte {
	if exec == 'x' {
		return c
	}
	return c - 'a' + 'A'
}
