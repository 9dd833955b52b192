package graph

import (
	"github.com/cloudscope/cloudscope/pkg/inventory"
)

// Stats summarizes the merged inventory at a glance. Counts are taken from
// the raw documents, not the graph, so they reflect what was collected even
// when duplicate ids collapse nodes.
type Stats struct {
	IngestionTime   string `json:"ingestion_time"`
	RegionsScanned  int    `json:"regions_scanned"`
	RegionsActive   int    `json:"regions_active"`
	S3Buckets       int    `json:"s3_buckets"`
	IAMUsers        int    `json:"iam_users"`
	IAMRoles        int    `json:"iam_roles"`
	EC2Instances    int    `json:"ec2_instances"`
	Vpcs            int    `json:"vpcs"`
	LambdaFunctions int    `json:"lambda_functions"`
	RDSInstances    int    `json:"rds_instances"`
	TotalErrors     int    `json:"total_errors"`
}

// ComputeStats aggregates high-level counts over all ingested documents.
// IngestionTime is the last non-empty collection timestamp seen.
func ComputeStats(docs []*inventory.Document) Stats {
	var s Stats
	scanned := make(map[string]bool)
	active := make(map[string]bool)

	for _, doc := range docs {
		if t := doc.Metadata.IngestionTime; t != "" {
			s.IngestionTime = t
		}
		for _, r := range doc.Metadata.RegionsScanned {
			scanned[r] = true
		}

		gs := doc.GlobalServices
		if gs.S3 != nil {
			s.S3Buckets += len(gs.S3.Buckets)
		}
		if gs.IAM != nil {
			s.IAMUsers += len(gs.IAM.Users)
			s.IAMRoles += len(gs.IAM.Roles)
		}

		for region, svc := range doc.RegionalServices {
			active[region] = true
			if svc.EC2 != nil {
				s.Vpcs += len(svc.EC2.Vpcs)
				for _, res := range svc.EC2.Instances {
					s.EC2Instances += len(res.Instances)
				}
			}
			if svc.Lambda != nil {
				s.LambdaFunctions += len(svc.Lambda.Functions)
			}
			if svc.RDS != nil {
				s.RDSInstances += len(svc.RDS.DBInstances)
			}
		}

		s.TotalErrors += len(doc.Errors.Global)
		for _, errs := range doc.Errors.Regional {
			s.TotalErrors += len(errs)
		}
	}

	s.RegionsScanned = len(scanned)
	s.RegionsActive = len(active)
	return s
}
