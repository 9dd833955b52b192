package view

import (
	"github.com/cloudscope/cloudscope/pkg/graph"
)

// SizeClass groups node types into three visual tiers.
type SizeClass int

const (
	SizeDefault SizeClass = iota
	SizeMedium
	SizeLarge
)

// NodeStyle is the presentation derived purely from a node's type.
type NodeStyle struct {
	Color string    `json:"color"` // hex fill color
	Icon  string    `json:"icon"`  // icon asset reference
	Shape string    `json:"shape"`
	Size  SizeClass `json:"size"`
}

// EdgeStyle is the presentation derived purely from an edge's type.
type EdgeStyle struct {
	Color  string `json:"color"`
	Dashed bool   `json:"dashed"`
}

// DefaultNodeStyle is the fallback for any type outside the enumeration.
// Unknown types render, never fail.
var DefaultNodeStyle = NodeStyle{Color: "#9e9e9e", Icon: "generic", Shape: "ellipse"}

var nodeStyles = map[graph.NodeType]NodeStyle{
	graph.TypeIAMUser:        {Color: "#dd344c", Icon: "iam-user", Shape: "ellipse"},
	graph.TypeIAMPolicy:      {Color: "#dd344c", Icon: "iam-policy", Shape: "note"},
	graph.TypeIAMRole:        {Color: "#dd344c", Icon: "iam-role", Shape: "ellipse"},
	graph.TypeS3Bucket:       {Color: "#7aa116", Icon: "s3", Shape: "cylinder", Size: SizeMedium},
	graph.TypeRoute53Zone:    {Color: "#8c4fff", Icon: "route53", Shape: "hexagon", Size: SizeMedium},
	graph.TypeRoute53Record:  {Color: "#8c4fff", Icon: "route53-record", Shape: "ellipse"},
	graph.TypeCloudFront:     {Color: "#8c4fff", Icon: "cloudfront", Shape: "hexagon", Size: SizeMedium},
	graph.TypeVpc:            {Color: "#ed7100", Icon: "vpc", Shape: "box", Size: SizeLarge},
	graph.TypeSubnet:         {Color: "#ed7100", Icon: "subnet", Shape: "box", Size: SizeMedium},
	graph.TypeSecurityGroup:  {Color: "#dd344c", Icon: "security-group", Shape: "diamond"},
	graph.TypeInternetGW:     {Color: "#ed7100", Icon: "internet-gateway", Shape: "house", Size: SizeMedium},
	graph.TypeNatGW:          {Color: "#ed7100", Icon: "nat-gateway", Shape: "house"},
	graph.TypeEC2Instance:    {Color: "#ed7100", Icon: "ec2", Shape: "box", Size: SizeMedium},
	graph.TypeVpcPeering:     {Color: "#ed7100", Icon: "peering", Shape: "parallelogram"},
	graph.TypeElasticIP:      {Color: "#ed7100", Icon: "eip", Shape: "ellipse"},
	graph.TypeEBSVolume:      {Color: "#7aa116", Icon: "ebs", Shape: "cylinder"},
	graph.TypeRDSInstance:    {Color: "#3b48cc", Icon: "rds", Shape: "cylinder", Size: SizeMedium},
	graph.TypeRDSCluster:     {Color: "#3b48cc", Icon: "rds-cluster", Shape: "cylinder", Size: SizeLarge},
	graph.TypeLambdaFunction: {Color: "#ed7100", Icon: "lambda", Shape: "ellipse", Size: SizeMedium},
	graph.TypeECSCluster:     {Color: "#ed7100", Icon: "ecs", Shape: "box", Size: SizeLarge},
	graph.TypeECSService:     {Color: "#ed7100", Icon: "ecs-service", Shape: "box"},
	graph.TypeEKSCluster:     {Color: "#ed7100", Icon: "eks", Shape: "box", Size: SizeLarge},
	graph.TypeLoadBalancer:   {Color: "#8c4fff", Icon: "elb", Shape: "hexagon", Size: SizeMedium},
	graph.TypeTargetGroup:    {Color: "#8c4fff", Icon: "target-group", Shape: "ellipse"},
	graph.TypeDynamoTable:    {Color: "#3b48cc", Icon: "dynamodb", Shape: "cylinder", Size: SizeMedium},
	graph.TypeSQSQueue:       {Color: "#e7157b", Icon: "sqs", Shape: "cds"},
	graph.TypeSNSTopic:       {Color: "#e7157b", Icon: "sns", Shape: "cds"},
	graph.TypeSecret:         {Color: "#dd344c", Icon: "secret", Shape: "note"},
	graph.TypeKMSKey:         {Color: "#dd344c", Icon: "kms", Shape: "note"},
	graph.TypeCfnStack:       {Color: "#e7157b", Icon: "cloudformation", Shape: "folder"},
	graph.TypeAPIGateway:     {Color: "#8c4fff", Icon: "api-gateway", Shape: "hexagon", Size: SizeMedium},
	graph.TypeACMCert:        {Color: "#dd344c", Icon: "acm", Shape: "note"},
	graph.TypeCloudTrail:     {Color: "#e7157b", Icon: "cloudtrail", Shape: "note"},
	graph.TypeElastiCache:    {Color: "#3b48cc", Icon: "elasticache", Shape: "cylinder"},
	graph.TypeEFS:            {Color: "#7aa116", Icon: "efs", Shape: "cylinder"},
	graph.TypeError:          {Color: "#b71c1c", Icon: "error", Shape: "octagon", Size: SizeMedium},
}

var edgeStyles = map[graph.EdgeType]EdgeStyle{
	graph.EdgeContainment: {Color: "#607d8b"},
	graph.EdgeMembership:  {Color: "#dd344c"},
	graph.EdgeTrafficFlow: {Color: "#dd344c", Dashed: true},
	graph.EdgeCompute:     {Color: "#ed7100"},
	graph.EdgeStorage:     {Color: "#7aa116"},
	graph.EdgeDNS:         {Color: "#8c4fff"},
	graph.EdgeCDN:         {Color: "#8c4fff"},
	graph.EdgeIdentity:    {Color: "#dd344c"},
	graph.EdgeLogging:     {Color: "#e7157b"},
	graph.EdgeGeneric:     {Color: "#9e9e9e"},
}

// StyleForNode looks up the presentation for a node type, falling back to
// DefaultNodeStyle for anything unrecognized.
func StyleForNode(t graph.NodeType) NodeStyle {
	if s, ok := nodeStyles[t]; ok {
		return s
	}
	return DefaultNodeStyle
}

// StyleForEdge looks up the presentation for an edge type. Unknown types get
// the generic style.
func StyleForEdge(t graph.EdgeType) EdgeStyle {
	if s, ok := edgeStyles[t]; ok {
		return s
	}
	return edgeStyles[graph.EdgeGeneric]
}
