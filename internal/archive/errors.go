package archive

import "golang.org/x/xerrors"

// ErrTruncated is returned when a file entry's declared size overruns the
// remaining archive buffer — a malformed archive, not a recoverable gap.
var ErrTruncated = xerrors.New("archive: truncated archive")

// ErrPathEscapesRoot is returned when an entry's name, once joined to a
// destination root, would resolve outside that root (e.g. "../../etc/passwd"),
// or when the packer is asked to follow a symlinked directory, which could
// recurse outside the tree being archived or cycle back into it.
var ErrPathEscapesRoot = xerrors.New("archive: entry path escapes root")
