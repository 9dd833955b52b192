// Package graph defines the resource graph model: typed nodes and edges built
// from raw inventory documents, the canonical in-memory representation every
// downstream component (filtering, projection, interaction, layout) reads
// from.
//
// A Graph is rebuilt wholesale on every dataset change and never mutated in
// place. Callers discard the previous Graph together with any derived state
// that references its node ids.
package graph

import (
	"sort"
)

// MetaInboundRules is the metadata key carrying security rule summaries.
// Detail projections render it as its own section rather than as a property.
const MetaInboundRules = "inboundRules"

// NodeType classifies a resource. The set is closed; anything outside it is
// rendered with a fallback style and reported as an unknown-type warning,
// never treated as fatal.
type NodeType string

const (
	TypeIAMUser        NodeType = "iam-user"
	TypeIAMPolicy      NodeType = "iam-policy"
	TypeIAMRole        NodeType = "iam-role"
	TypeS3Bucket       NodeType = "s3-bucket"
	TypeRoute53Zone    NodeType = "route53-zone"
	TypeRoute53Record  NodeType = "route53-record"
	TypeCloudFront     NodeType = "cloudfront"
	TypeVpc            NodeType = "vpc"
	TypeSubnet         NodeType = "subnet"
	TypeSecurityGroup  NodeType = "security-group"
	TypeInternetGW     NodeType = "internet-gateway"
	TypeNatGW          NodeType = "nat-gateway"
	TypeEC2Instance    NodeType = "ec2-instance"
	TypeVpcPeering     NodeType = "vpc-peering"
	TypeElasticIP      NodeType = "elastic-ip"
	TypeEBSVolume      NodeType = "ebs-volume"
	TypeRDSInstance    NodeType = "rds-instance"
	TypeRDSCluster     NodeType = "rds-cluster"
	TypeLambdaFunction NodeType = "lambda-function"
	TypeECSCluster     NodeType = "ecs-cluster"
	TypeECSService     NodeType = "ecs-service"
	TypeEKSCluster     NodeType = "eks-cluster"
	TypeLoadBalancer   NodeType = "load-balancer"
	TypeTargetGroup    NodeType = "target-group"
	TypeDynamoTable    NodeType = "dynamodb-table"
	TypeSQSQueue       NodeType = "sqs-queue"
	TypeSNSTopic       NodeType = "sns-topic"
	TypeSecret         NodeType = "secret"
	TypeKMSKey         NodeType = "kms-key"
	TypeCfnStack       NodeType = "cfn-stack"
	TypeAPIGateway     NodeType = "api-gateway"
	TypeACMCert        NodeType = "acm-cert"
	TypeCloudTrail     NodeType = "cloudtrail"
	TypeElastiCache    NodeType = "elasticache-cluster"
	TypeEFS            NodeType = "efs"

	// TypeError marks a collection or access failure surfaced as a node.
	TypeError NodeType = "error"
)

// knownNodeTypes is the closed enumeration used for validation.
var knownNodeTypes = map[NodeType]bool{
	TypeIAMUser: true, TypeIAMPolicy: true, TypeIAMRole: true,
	TypeS3Bucket: true, TypeRoute53Zone: true, TypeRoute53Record: true,
	TypeCloudFront: true, TypeVpc: true, TypeSubnet: true,
	TypeSecurityGroup: true, TypeInternetGW: true, TypeNatGW: true,
	TypeEC2Instance: true, TypeVpcPeering: true, TypeElasticIP: true,
	TypeEBSVolume: true, TypeRDSInstance: true, TypeRDSCluster: true,
	TypeLambdaFunction: true, TypeECSCluster: true, TypeECSService: true,
	TypeEKSCluster: true, TypeLoadBalancer: true, TypeTargetGroup: true,
	TypeDynamoTable: true, TypeSQSQueue: true, TypeSNSTopic: true,
	TypeSecret: true, TypeKMSKey: true, TypeCfnStack: true,
	TypeAPIGateway: true, TypeACMCert: true, TypeCloudTrail: true,
	TypeElastiCache: true, TypeEFS: true, TypeError: true,
}

// Known reports whether t is in the node type enumeration.
func (t NodeType) Known() bool { return knownNodeTypes[t] }

// EdgeType classifies a relationship.
type EdgeType string

const (
	// EdgeContainment: a boundary resource holds another (vpc→subnet,
	// subnet hosts an instance).
	EdgeContainment EdgeType = "containment"
	// EdgeMembership: a resource belongs to an access-control group.
	EdgeMembership EdgeType = "membership"
	// EdgeTrafficFlow: a permitted network path derived from inbound rules.
	EdgeTrafficFlow EdgeType = "traffic-flow"
	// EdgeCompute: compute hierarchy (cluster runs service).
	EdgeCompute EdgeType = "compute"
	// EdgeStorage: a volume or filesystem attachment.
	EdgeStorage EdgeType = "storage"
	// EdgeDNS: naming (zone contains record, record aliases a target).
	EdgeDNS EdgeType = "dns"
	// EdgeCDN: content delivery origin relationships.
	EdgeCDN EdgeType = "cdn"
	// EdgeIdentity: identity bindings (role assumption, policy attachment).
	EdgeIdentity EdgeType = "identity"
	// EdgeLogging: audit trails writing to storage.
	EdgeLogging EdgeType = "logging"
	// EdgeGeneric: relationship with no more specific category.
	EdgeGeneric EdgeType = "generic"
)

var knownEdgeTypes = map[EdgeType]bool{
	EdgeContainment: true, EdgeMembership: true, EdgeTrafficFlow: true,
	EdgeCompute: true, EdgeStorage: true, EdgeDNS: true, EdgeCDN: true,
	EdgeIdentity: true, EdgeLogging: true, EdgeGeneric: true,
}

// Known reports whether t is in the edge type enumeration.
func (t EdgeType) Known() bool { return knownEdgeTypes[t] }

// Node is one inventoried resource.
type Node struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Type     NodeType `json:"type"`
	Region   string   `json:"region"`  // grouping dimension A
	Service  string   `json:"service"` // grouping dimension B
	Metadata Metadata `json:"metadata,omitempty"`
}

// Edge is a directed relationship between two nodes. Multiple edges may
// connect the same pair with different types or labels.
type Edge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   EdgeType `json:"type"`
	Label  string   `json:"label"`
}

// Touches reports whether the edge has id as either endpoint.
func (e Edge) Touches(id string) bool { return e.Source == id || e.Target == id }

// Graph is the canonical resource graph: ordered nodes and edges plus lookup
// indexes. Instances are immutable after Build; cycles are allowed (peering).
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`

	byID       map[string]int
	byEndpoint map[string][]int
}

// New assembles a Graph from prepared node and edge slices, indexing them for
// lookup. Build is the usual constructor; New exists for tests and decoding.
func New(nodes []Node, edges []Edge) *Graph {
	g := &Graph{Nodes: nodes, Edges: edges}
	g.reindex()
	return g
}

func (g *Graph) reindex() {
	g.byID = make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		g.byID[n.ID] = i
	}
	g.byEndpoint = make(map[string][]int)
	for i, e := range g.Edges {
		g.byEndpoint[e.Source] = append(g.byEndpoint[e.Source], i)
		if e.Target != e.Source {
			g.byEndpoint[e.Target] = append(g.byEndpoint[e.Target], i)
		}
	}
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.byID[id]
	if !ok {
		return Node{}, false
	}
	return g.Nodes[i], true
}

// Has reports whether a node with the given id exists.
func (g *Graph) Has(id string) bool {
	_, ok := g.byID[id]
	return ok
}

// EdgesTouching returns all edges with id as source or target, in insertion
// order.
func (g *Graph) EdgesTouching(id string) []Edge {
	idxs := g.byEndpoint[id]
	out := make([]Edge, len(idxs))
	for i, idx := range idxs {
		out[i] = g.Edges[idx]
	}
	return out
}

// Regions returns the sorted set of distinct node regions: the universe for
// grouping dimension A.
func (g *Graph) Regions() []string {
	return g.distinct(func(n Node) string { return n.Region })
}

// Services returns the sorted set of distinct node services: the universe for
// grouping dimension B.
func (g *Graph) Services() []string {
	return g.distinct(func(n Node) string { return n.Service })
}

// Types returns the sorted set of distinct node types.
func (g *Graph) Types() []string {
	return g.distinct(func(n Node) string { return string(n.Type) })
}

func (g *Graph) distinct(key func(Node) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, n := range g.Nodes {
		k := key(n)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
