package types

// LoadStatus classifies the result of loading a match file. The UI needs to
// distinguish "empty because nothing exists yet" from "empty because the
// file could not be understood".
type LoadStatus int

const (
	// LoadOK means the file was read and decoded, possibly to zero matches.
	LoadOK LoadStatus = iota
	// LoadNotFound means the file does not exist; rendered as empty.
	LoadNotFound
	// LoadParseFailed means the file exists but is not valid YAML. The
	// on-disk content must not be overwritten without confirmation.
	LoadParseFailed
)

// String returns a human-readable representation
func (s LoadStatus) String() string {
	switch s {
	case LoadOK:
		return "ok"
	case LoadNotFound:
		return "not found"
	case LoadParseFailed:
		return "parse failed"
	default:
		return "unknown"
	}
}
