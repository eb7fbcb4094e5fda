package photodb

import "time"

// Asset kind discriminator values used by the store.
const (
	KindPhoto int64 = 0
	KindVideo int64 = 1
)

// Location is a validated geographic position. Store rows holding the "unset"
// sentinel or out-of-bounds values never produce one.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Resolution is a candidate on-disk path for an asset. Verified reports
// whether the file was actually found under one of the library layouts; an
// unverified path is the primary-layout best guess, commonly meaning the
// asset lives only in a cloud tier.
type Resolution struct {
	Path     string
	Verified bool
}

// Asset is one photo or video row projected into normalized values. Optional
// fields are nil (or empty strings) when the store holds no usable value.
type Asset struct {
	UUID      string
	Filename  string
	Taken     *time.Time
	Directory string
	Width     int64
	Height    int64
	Location  *Location
	Path      *Resolution
}

// AssetDetail extends Asset with the columns of the extended-attributes
// table, each present only when this schema version exposes it.
type AssetDetail struct {
	Asset

	Kind     *int64
	Duration *float64

	Title            string
	OriginalFilename string
	CameraMake       string
	CameraModel      string
	LensMake         string
	LensModel        string
	FocalLength35mm  *int64
	OriginalFileSize *int64
	EXIFTimestamp    string
}

// Album is a user-defined collection of assets. AssetCount is nil when the
// join table could not be detected for this schema version.
type Album struct {
	Title      string
	UUID       string
	AssetCount *int
}
