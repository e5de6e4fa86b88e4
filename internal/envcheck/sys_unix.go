//go:build unix

package envcheck

import (
	"os/user"
	"strconv"

	"golang.org/x/sys/unix"
)

// currentGroups resolves the primary and supplementary group IDs of the
// process to group names. Unresolvable IDs are reported numerically.
func currentGroups() ([]string, error) {
	gids, err := unix.Getgroups()
	if err != nil {
		return nil, err
	}
	gids = append(gids, unix.Getgid())

	seen := make(map[int]bool, len(gids))
	names := make([]string, 0, len(gids))
	for _, gid := range gids {
		if seen[gid] {
			continue
		}
		seen[gid] = true

		id := strconv.Itoa(gid)
		if g, err := user.LookupGroupId(id); err == nil {
			names = append(names, g.Name)
		} else {
			names = append(names, id)
		}
	}

	return names, nil
}

func readable(path string) bool {
	return unix.Access(path, unix.R_OK) == nil
}
