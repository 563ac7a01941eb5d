package codec

import (
	"github.com/cespare/xxhash/v2"
	"github.com/dbradf/shrub-go/model"
)

// Fingerprint returns a stable hash of the project's canonical serialized
// form. Two structurally equal projects always fingerprint identically, so
// the value is suitable for change detection in generated-configuration
// pipelines.
func Fingerprint(p *model.Project) (uint64, error) {
	text, err := Serialize(p)
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64String(text), nil
}
