package dirhist

// Binary size multipliers used by the default bucket table.
const (
	KiB int64 = 1 << (10 * (iota + 1))
	MiB
	GiB
	TiB
)

// Bucket is a named upper bound used to classify files by size.
type Bucket struct {
	// Threshold is the exclusive upper bound in bytes. Zero marks the catch-all bucket.
	Threshold int64 `json:"threshold" yaml:"threshold"`
	// Label is the human-readable name of the bucket.
	Label string `json:"label" yaml:"label"`
}

// Sentinel reports whether the bucket is the catch-all bucket.
func (b Bucket) Sentinel() bool {
	return b.Threshold == 0
}

// Table is an ordered list of buckets.
//
// Thresholds must strictly increase and the last bucket must be the sentinel.
// A table that breaks this rule yields undefined classifications; it is not
// checked at run time.
type Table []Bucket

// DefaultTable is the bucket table used by the command line.
//
//nolint:gochecknoglobals // Config constant
var DefaultTable = Table{
	{Threshold: KiB, Label: "<1kB"},
	{Threshold: 10 * KiB, Label: "<10kB"},
	{Threshold: 100 * KiB, Label: "<100kB"},
	{Threshold: 500 * KiB, Label: "<500kB"},
	{Threshold: MiB, Label: "<1mB"},
	{Threshold: 500 * MiB, Label: "<500mB"},
	{Threshold: GiB, Label: "<1gB"},
	{Threshold: 500 * GiB, Label: "<500gB"},
	{Threshold: TiB, Label: "<1tB"},
	{Threshold: 0, Label: ">1tB"},
}

// Labels returns the bucket labels in table order.
func (t Table) Labels() []string {
	labels := make([]string, 0, len(t))
	for _, b := range t {
		labels = append(labels, b.Label)
	}

	return labels
}
