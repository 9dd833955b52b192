// Package inventory defines the raw inventory document format produced by the
// upstream collector, and decoding with structural validation.
//
// A document has four top-level sections:
//   - metadata: collection run information (time, regions scanned, profile)
//   - global_services: account-wide services (IAM, S3, Route53, CloudFront)
//   - regional_services: per-region services keyed by region name
//   - errors: access failures recorded during collection
//
// Field names follow the collector's output, which in turn mirrors the AWS API
// response shapes. Fields the graph builder does not consume are omitted and
// ignored during decoding.
package inventory

// Document is one collected inventory, as uploaded or read from disk.
type Document struct {
	Metadata         Metadata                    `json:"metadata" bson:"metadata"`
	GlobalServices   GlobalServices              `json:"global_services" bson:"global_services"`
	RegionalServices map[string]RegionalServices `json:"regional_services" bson:"regional_services"`
	Errors           ErrorReport                 `json:"errors" bson:"errors"`
}

// Metadata describes the collection run.
type Metadata struct {
	IngestionTime  string   `json:"ingestion_time" bson:"ingestion_time"`
	RegionsScanned []string `json:"regions_scanned" bson:"regions_scanned"`
	Profile        string   `json:"profile" bson:"profile"`
	Summary        Summary  `json:"summary" bson:"summary"`
}

// Summary carries aggregate counts computed by the collector.
type Summary struct {
	TotalErrors int `json:"total_errors" bson:"total_errors"`
}

// ErrorReport lists access failures, split into account-wide and per-region.
type ErrorReport struct {
	Global   []AccessError            `json:"global" bson:"global"`
	Regional map[string][]AccessError `json:"regional" bson:"regional"`
}

// AccessError records a single failed collection call (e.g. access denied).
type AccessError struct {
	Resource string `json:"resource" bson:"resource"`
	Code     string `json:"code" bson:"code"`
	Message  string `json:"message" bson:"message"`
}

// Tag is an AWS-style key/value resource tag.
type Tag struct {
	Key   string `json:"Key" bson:"key"`
	Value string `json:"Value" bson:"value"`
}

// NameTag returns the value of the "Name" tag, or empty string if absent.
func NameTag(tags []Tag) string {
	for _, t := range tags {
		if t.Key == "Name" {
			return t.Value
		}
	}
	return ""
}
