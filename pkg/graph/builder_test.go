package graph

import (
	"reflect"
	"testing"

	"github.com/cloudscope/cloudscope/pkg/inventory"
)

// webTierDoc builds an inventory with a vpc, a subnet, two security groups
// cross-referencing each other, and an instance.
func webTierDoc() *inventory.Document {
	port := 8080
	return &inventory.Document{
		Metadata: inventory.Metadata{
			IngestionTime:  "2026-08-01T10:00:00Z",
			RegionsScanned: []string{"eu-west-1", "us-east-1"},
		},
		RegionalServices: map[string]inventory.RegionalServices{
			"eu-west-1": {
				EC2: &inventory.EC2{
					Vpcs: []inventory.Vpc{
						{VpcID: "vpc-1", CidrBlock: "10.0.0.0/16", State: "available",
							Tags: []inventory.Tag{{Key: "Name", Value: "main"}}},
					},
					Subnets: []inventory.Subnet{
						{SubnetID: "subnet-1", VpcID: "vpc-1", CidrBlock: "10.0.1.0/24", AvailabilityZone: "eu-west-1a"},
					},
					SecurityGroups: []inventory.SecurityGroup{
						{GroupID: "sg-web", GroupName: "web-sg", VpcID: "vpc-1"},
						{GroupID: "sg-app", GroupName: "app-sg", VpcID: "vpc-1",
							IPPermissions: []inventory.IPPermission{
								{IPProtocol: "tcp", FromPort: &port, ToPort: &port,
									UserIDGroupPairs: []inventory.GroupPair{{GroupID: "sg-web"}}},
							}},
					},
					Instances: []inventory.Reservation{
						{Instances: []inventory.Instance{
							{InstanceID: "i-1", InstanceType: "t3.micro",
								State:    inventory.InstanceState{Name: "running"},
								VpcID:    "vpc-1", SubnetID: "subnet-1",
								SecurityGroups: []inventory.GroupReference{{GroupID: "sg-web"}},
								Tags:           []inventory.Tag{{Key: "Name", Value: "web-1"}}},
						}},
					},
				},
			},
		},
	}
}

func TestBuildTopology(t *testing.T) {
	g, report := Build([]*inventory.Document{webTierDoc()})

	wantNodes := []string{"vpc:vpc-1", "subnet:subnet-1", "sg:sg-web", "sg:sg-app", "ec2:i-1"}
	for _, id := range wantNodes {
		if !g.Has(id) {
			t.Errorf("missing node %s", id)
		}
	}
	if report.Nodes != len(wantNodes) {
		t.Errorf("report.Nodes = %d, want %d", report.Nodes, len(wantNodes))
	}
	if report.DuplicateIDs != 0 {
		t.Errorf("duplicates = %d, want 0", report.DuplicateIDs)
	}

	vpc, _ := g.Node("vpc:vpc-1")
	if vpc.Label != "main (10.0.0.0/16)" {
		t.Errorf("vpc label = %q", vpc.Label)
	}
	if vpc.Region != "eu-west-1" || vpc.Service != "ec2" {
		t.Errorf("vpc grouping = %s/%s", vpc.Region, vpc.Service)
	}

	hasEdge := func(source, target string, typ EdgeType) bool {
		for _, e := range g.Edges {
			if e.Source == source && e.Target == target && e.Type == typ {
				return true
			}
		}
		return false
	}
	if !hasEdge("vpc:vpc-1", "subnet:subnet-1", EdgeContainment) {
		t.Error("missing vpc contains subnet edge")
	}
	if !hasEdge("subnet:subnet-1", "ec2:i-1", EdgeContainment) {
		t.Error("missing subnet hosts instance edge")
	}
	if !hasEdge("ec2:i-1", "sg:sg-web", EdgeMembership) {
		t.Error("missing instance membership edge")
	}
	if !hasEdge("sg:sg-web", "sg:sg-app", EdgeTrafficFlow) {
		t.Error("missing derived traffic-flow edge")
	}
}

func TestBuildTrafficFlowLabel(t *testing.T) {
	g, _ := Build([]*inventory.Document{webTierDoc()})

	for _, e := range g.Edges {
		if e.Type == EdgeTrafficFlow && e.Source == "sg:sg-web" {
			if e.Label != "tcp:8080" {
				t.Errorf("traffic-flow label = %q, want tcp:8080", e.Label)
			}
			return
		}
	}
	t.Fatal("traffic-flow edge not found")
}

func TestBuildInboundRulesMetadata(t *testing.T) {
	g, _ := Build([]*inventory.Document{webTierDoc()})

	sg, ok := g.Node("sg:sg-app")
	if !ok {
		t.Fatal("sg:sg-app not found")
	}
	rules, ok := sg.Metadata[MetaInboundRules]
	if !ok {
		t.Fatal("inboundRules metadata missing")
	}
	want := []string{"tcp:8080 from sg-web"}
	if !reflect.DeepEqual(rules.List(), want) {
		t.Errorf("rules = %v, want %v", rules.List(), want)
	}
}

func TestBuildDuplicateIDsLastWriteWins(t *testing.T) {
	first := &inventory.Document{
		RegionalServices: map[string]inventory.RegionalServices{
			"eu-west-1": {EC2: &inventory.EC2{Vpcs: []inventory.Vpc{
				{VpcID: "vpc-1", CidrBlock: "10.0.0.0/16", Tags: []inventory.Tag{{Key: "Name", Value: "old"}}},
			}}},
		},
	}
	second := &inventory.Document{
		RegionalServices: map[string]inventory.RegionalServices{
			"eu-west-1": {EC2: &inventory.EC2{Vpcs: []inventory.Vpc{
				{VpcID: "vpc-1", CidrBlock: "10.1.0.0/16", Tags: []inventory.Tag{{Key: "Name", Value: "new"}}},
			}}},
		},
	}

	g, report := Build([]*inventory.Document{first, second})

	if report.DuplicateIDs != 1 {
		t.Errorf("duplicates = %d, want 1", report.DuplicateIDs)
	}
	count := 0
	for _, n := range g.Nodes {
		if n.ID == "vpc:vpc-1" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("vpc:vpc-1 appears %d times, want 1", count)
	}
	n, _ := g.Node("vpc:vpc-1")
	if n.Label != "new (10.1.0.0/16)" {
		t.Errorf("label = %q, want the later source's value", n.Label)
	}
}

func TestBuildDropsDanglingEdges(t *testing.T) {
	// The instance references a security group that was never inventoried.
	doc := &inventory.Document{
		RegionalServices: map[string]inventory.RegionalServices{
			"eu-west-1": {EC2: &inventory.EC2{
				Instances: []inventory.Reservation{
					{Instances: []inventory.Instance{
						{InstanceID: "i-1", SecurityGroups: []inventory.GroupReference{{GroupID: "sg-ghost"}}},
					}},
				},
			}},
		},
	}

	g, report := Build([]*inventory.Document{doc})

	if report.DroppedEdges != 1 {
		t.Errorf("dropped = %d, want 1", report.DroppedEdges)
	}
	for _, e := range g.Edges {
		if !g.Has(e.Source) || !g.Has(e.Target) {
			t.Errorf("dangling edge survived: %+v", e)
		}
	}
}

func TestBuildErrorNodes(t *testing.T) {
	doc := &inventory.Document{
		Errors: inventory.ErrorReport{
			Global: []inventory.AccessError{{Resource: "iam", Code: "AccessDenied", Message: "denied"}},
			Regional: map[string][]inventory.AccessError{
				"eu-west-1": {{Resource: "ec2", Code: "UnauthorizedOperation"}},
			},
		},
	}

	g, report := Build([]*inventory.Document{doc})

	if report.ErrorNodes != 2 {
		t.Fatalf("error nodes = %d, want 2", report.ErrorNodes)
	}
	for _, n := range g.Nodes {
		if n.Type != TypeError {
			t.Errorf("node %s type = %s, want error", n.ID, n.Type)
		}
		if n.Service != "error" {
			t.Errorf("node %s service = %s, want error", n.ID, n.Service)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	doc := webTierDoc()
	doc.RegionalServices["us-east-1"] = inventory.RegionalServices{
		DynamoDB: &inventory.DynamoDB{Tables: []inventory.Table{{TableName: "events"}}},
	}

	first, _ := Build([]*inventory.Document{doc})
	for i := 0; i < 5; i++ {
		next, _ := Build([]*inventory.Document{doc})
		if !reflect.DeepEqual(first.Nodes, next.Nodes) {
			t.Fatal("node order differs between identical builds")
		}
		if !reflect.DeepEqual(first.Edges, next.Edges) {
			t.Fatal("edge order differs between identical builds")
		}
	}
}

func TestBuildGlobalServices(t *testing.T) {
	doc := &inventory.Document{
		GlobalServices: inventory.GlobalServices{
			IAM: &inventory.IAM{
				Users: []inventory.IAMUser{
					{UserID: "AID1", UserName: "alice", Arn: "arn:aws:iam::1:user/alice",
						AccessKeys:       []inventory.AccessKey{{AccessKeyID: "AK1", Status: "Active"}},
						AttachedPolicies: []inventory.IAMPolicy{{PolicyName: "admin", PolicyArn: "arn:aws:iam::aws:policy/admin"}}},
				},
				Roles: []inventory.IAMRole{
					{RoleID: "RID1", RoleName: "app-role", Arn: "arn:aws:iam::1:role/app-role"},
				},
			},
			S3: &inventory.S3{Buckets: []inventory.Bucket{{Name: "assets"}}},
			CloudFront: &inventory.CloudFront{Distributions: []inventory.Distribution{
				{ID: "E123", DomainName: "d111.cloudfront.net", Status: "Deployed",
					Origins: inventory.Origins{Items: []inventory.Origin{{DomainName: "assets.s3.amazonaws.com"}}}},
			}},
		},
		RegionalServices: map[string]inventory.RegionalServices{
			"eu-west-1": {Lambda: &inventory.Lambda{Functions: []inventory.Function{
				{FunctionName: "ingest", Runtime: "go1.x", Role: "arn:aws:iam::1:role/app-role"},
			}}},
		},
	}

	g, _ := Build([]*inventory.Document{doc})

	user, ok := g.Node("iam-user:AID1")
	if !ok {
		t.Fatal("iam user missing")
	}
	if v := user.Metadata["active_keys"]; v.Num() != 1 {
		t.Errorf("active_keys = %v, want 1", v.Num())
	}
	if v := user.Metadata["mfa_enabled"]; v.Boolean() {
		t.Error("mfa_enabled = yes, want no")
	}

	var hasOrigin, hasAssumes bool
	for _, e := range g.Edges {
		if e.Source == "cf:E123" && e.Target == "s3:assets" && e.Type == EdgeCDN {
			hasOrigin = true
		}
		if e.Source == "lambda:ingest" && e.Target == "iam-role:RID1" && e.Type == EdgeIdentity {
			hasAssumes = true
		}
	}
	if !hasOrigin {
		t.Error("missing cloudfront origin edge")
	}
	if !hasAssumes {
		t.Error("missing lambda assumes-role edge")
	}
}

func TestBuildEmptyInput(t *testing.T) {
	g, report := Build(nil)
	if len(g.Nodes) != 0 || len(g.Edges) != 0 {
		t.Errorf("empty build produced %d nodes, %d edges", len(g.Nodes), len(g.Edges))
	}
	if report != (Report{}) {
		t.Errorf("report = %+v, want zero", report)
	}
}
