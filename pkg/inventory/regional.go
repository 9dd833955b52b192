package inventory

// RegionalServices holds the per-region service inventories.
type RegionalServices struct {
	EC2            *EC2            `json:"ec2,omitempty" bson:"ec2,omitempty"`
	RDS            *RDS            `json:"rds,omitempty" bson:"rds,omitempty"`
	Lambda         *Lambda         `json:"lambda,omitempty" bson:"lambda,omitempty"`
	ECS            *ECS            `json:"ecs,omitempty" bson:"ecs,omitempty"`
	EKS            *EKS            `json:"eks,omitempty" bson:"eks,omitempty"`
	ELB            *ELB            `json:"elb,omitempty" bson:"elb,omitempty"`
	DynamoDB       *DynamoDB       `json:"dynamodb,omitempty" bson:"dynamodb,omitempty"`
	SQS            *SQS            `json:"sqs,omitempty" bson:"sqs,omitempty"`
	SNS            *SNS            `json:"sns,omitempty" bson:"sns,omitempty"`
	SecretsManager *SecretsManager `json:"secrets_manager,omitempty" bson:"secrets_manager,omitempty"`
	KMS            *KMS            `json:"kms,omitempty" bson:"kms,omitempty"`
	CloudFormation *CloudFormation `json:"cloudformation,omitempty" bson:"cloudformation,omitempty"`
	APIGateway     *APIGateway     `json:"api_gateway,omitempty" bson:"api_gateway,omitempty"`
	ACM            *ACM            `json:"acm,omitempty" bson:"acm,omitempty"`
	CloudTrail     *CloudTrail     `json:"cloudtrail,omitempty" bson:"cloudtrail,omitempty"`
	ElastiCache    *ElastiCache    `json:"elasticache,omitempty" bson:"elasticache,omitempty"`
	EFS            *EFS            `json:"efs,omitempty" bson:"efs,omitempty"`
}

// EC2 inventory: network topology plus compute and storage primitives.
type EC2 struct {
	Vpcs                  []Vpc                  `json:"vpcs" bson:"vpcs"`
	Subnets               []Subnet               `json:"subnets" bson:"subnets"`
	SecurityGroups        []SecurityGroup        `json:"security_groups" bson:"security_groups"`
	InternetGateways      []InternetGateway      `json:"internet_gateways" bson:"internet_gateways"`
	NatGateways           []NatGateway           `json:"nat_gateways" bson:"nat_gateways"`
	Instances             []Reservation          `json:"instances" bson:"instances"`
	VpcPeeringConnections []VpcPeeringConnection `json:"vpc_peering_connections" bson:"vpc_peering_connections"`
	ElasticIPs            []ElasticIP            `json:"elastic_ips" bson:"elastic_ips"`
	Volumes               []Volume               `json:"volumes" bson:"volumes"`
}

type Vpc struct {
	VpcID     string `json:"VpcId" bson:"vpc_id"`
	CidrBlock string `json:"CidrBlock" bson:"cidr_block"`
	State     string `json:"State" bson:"state"`
	Tags      []Tag  `json:"Tags" bson:"tags"`
}

type Subnet struct {
	SubnetID            string `json:"SubnetId" bson:"subnet_id"`
	VpcID               string `json:"VpcId" bson:"vpc_id"`
	CidrBlock           string `json:"CidrBlock" bson:"cidr_block"`
	AvailabilityZone    string `json:"AvailabilityZone" bson:"availability_zone"`
	MapPublicIPOnLaunch bool   `json:"MapPublicIpOnLaunch" bson:"map_public_ip_on_launch"`
	Tags                []Tag  `json:"Tags" bson:"tags"`
}

type SecurityGroup struct {
	GroupID       string         `json:"GroupId" bson:"group_id"`
	GroupName     string         `json:"GroupName" bson:"group_name"`
	VpcID         string         `json:"VpcId" bson:"vpc_id"`
	IPPermissions []IPPermission `json:"IpPermissions" bson:"ip_permissions"`
}

// IPPermission is one inbound rule of a security group. FromPort/ToPort are
// pointers because protocol "-1" (all traffic) carries no port range.
type IPPermission struct {
	IPProtocol       string      `json:"IpProtocol" bson:"ip_protocol"`
	FromPort         *int        `json:"FromPort,omitempty" bson:"from_port,omitempty"`
	ToPort           *int        `json:"ToPort,omitempty" bson:"to_port,omitempty"`
	IPRanges         []IPRange   `json:"IpRanges" bson:"ip_ranges"`
	UserIDGroupPairs []GroupPair `json:"UserIdGroupPairs" bson:"user_id_group_pairs"`
}

type IPRange struct {
	CidrIP string `json:"CidrIp" bson:"cidr_ip"`
}

type GroupPair struct {
	GroupID string `json:"GroupId" bson:"group_id"`
}

type InternetGateway struct {
	InternetGatewayID string          `json:"InternetGatewayId" bson:"internet_gateway_id"`
	Attachments       []IgwAttachment `json:"Attachments" bson:"attachments"`
	Tags              []Tag           `json:"Tags" bson:"tags"`
}

type IgwAttachment struct {
	VpcID string `json:"VpcId" bson:"vpc_id"`
}

type NatGateway struct {
	NatGatewayID string `json:"NatGatewayId" bson:"nat_gateway_id"`
	State        string `json:"State" bson:"state"`
	SubnetID     string `json:"SubnetId" bson:"subnet_id"`
	VpcID        string `json:"VpcId" bson:"vpc_id"`
	Tags         []Tag  `json:"Tags" bson:"tags"`
}

// Reservation groups instances the way the EC2 API returns them.
type Reservation struct {
	Instances []Instance `json:"Instances" bson:"instances"`
}

type Instance struct {
	InstanceID       string           `json:"InstanceId" bson:"instance_id"`
	InstanceType     string           `json:"InstanceType" bson:"instance_type"`
	State            InstanceState    `json:"State" bson:"state"`
	VpcID            string           `json:"VpcId" bson:"vpc_id"`
	SubnetID         string           `json:"SubnetId" bson:"subnet_id"`
	PrivateIPAddress string           `json:"PrivateIpAddress" bson:"private_ip_address"`
	PublicIPAddress  string           `json:"PublicIpAddress" bson:"public_ip_address"`
	SecurityGroups   []GroupReference `json:"SecurityGroups" bson:"security_groups"`
	Tags             []Tag            `json:"Tags" bson:"tags"`
}

type InstanceState struct {
	Name string `json:"Name" bson:"name"`
}

type GroupReference struct {
	GroupID string `json:"GroupId" bson:"group_id"`
}

type VpcPeeringConnection struct {
	VpcPeeringConnectionID string        `json:"VpcPeeringConnectionId" bson:"vpc_peering_connection_id"`
	Status                 PeeringStatus `json:"Status" bson:"status"`
	RequesterVpcInfo       VpcInfo       `json:"RequesterVpcInfo" bson:"requester_vpc_info"`
	AccepterVpcInfo        VpcInfo       `json:"AccepterVpcInfo" bson:"accepter_vpc_info"`
}

type PeeringStatus struct {
	Code string `json:"Code" bson:"code"`
}

type VpcInfo struct {
	VpcID string `json:"VpcId" bson:"vpc_id"`
}

type ElasticIP struct {
	AllocationID string `json:"AllocationId" bson:"allocation_id"`
	PublicIP     string `json:"PublicIp" bson:"public_ip"`
	InstanceID   string `json:"InstanceId" bson:"instance_id"`
}

type Volume struct {
	VolumeID    string             `json:"VolumeId" bson:"volume_id"`
	Size        int                `json:"Size" bson:"size"`
	State       string             `json:"State" bson:"state"`
	Attachments []VolumeAttachment `json:"Attachments" bson:"attachments"`
	Tags        []Tag              `json:"Tags" bson:"tags"`
}

type VolumeAttachment struct {
	InstanceID string `json:"InstanceId" bson:"instance_id"`
}

// RDS inventory.
type RDS struct {
	DBInstances []DBInstance `json:"db_instances" bson:"db_instances"`
	DBClusters  []DBCluster  `json:"db_clusters" bson:"db_clusters"`
}

type DBInstance struct {
	DBInstanceIdentifier string            `json:"DBInstanceIdentifier" bson:"db_instance_identifier"`
	Engine               string            `json:"Engine" bson:"engine"`
	DBInstanceClass      string            `json:"DBInstanceClass" bson:"db_instance_class"`
	DBInstanceStatus     string            `json:"DBInstanceStatus" bson:"db_instance_status"`
	Endpoint             Endpoint          `json:"Endpoint" bson:"endpoint"`
	DBSubnetGroup        DBSubnetGroup     `json:"DBSubnetGroup" bson:"db_subnet_group"`
	VpcSecurityGroups    []VpcSecurityGroup `json:"VpcSecurityGroups" bson:"vpc_security_groups"`
	MultiAZ              bool              `json:"MultiAZ" bson:"multi_az"`
	StorageEncrypted     bool              `json:"StorageEncrypted" bson:"storage_encrypted"`
	Tags                 []Tag             `json:"Tags" bson:"tags"`
}

type Endpoint struct {
	Address string `json:"Address" bson:"address"`
	Port    int    `json:"Port" bson:"port"`
}

type DBSubnetGroup struct {
	VpcID string `json:"VpcId" bson:"vpc_id"`
}

type VpcSecurityGroup struct {
	VpcSecurityGroupID string `json:"VpcSecurityGroupId" bson:"vpc_security_group_id"`
}

type DBCluster struct {
	DBClusterIdentifier string `json:"DBClusterIdentifier" bson:"db_cluster_identifier"`
	Engine              string `json:"Engine" bson:"engine"`
	Status              string `json:"Status" bson:"status"`
	Tags                []Tag  `json:"Tags" bson:"tags"`
}

// Lambda inventory.
type Lambda struct {
	Functions []Function `json:"functions" bson:"functions"`
}

type Function struct {
	FunctionName string    `json:"FunctionName" bson:"function_name"`
	Runtime      string    `json:"Runtime" bson:"runtime"`
	MemorySize   int       `json:"MemorySize" bson:"memory_size"`
	Role         string    `json:"Role" bson:"role"`
	VpcConfig    VpcConfig `json:"VpcConfig" bson:"vpc_config"`
}

type VpcConfig struct {
	VpcID            string   `json:"VpcId" bson:"vpc_id"`
	SecurityGroupIDs []string `json:"SecurityGroupIds" bson:"security_group_ids"`
	SubnetIDs        []string `json:"SubnetIds" bson:"subnet_ids"`
}

// ECS inventory. The collector lowercases these field names.
type ECS struct {
	Clusters []ECSCluster `json:"clusters" bson:"clusters"`
}

type ECSCluster struct {
	ClusterName       string       `json:"clusterName" bson:"cluster_name"`
	ClusterArn        string       `json:"clusterArn" bson:"cluster_arn"`
	Status            string       `json:"status" bson:"status"`
	RunningTasksCount int          `json:"runningTasksCount" bson:"running_tasks_count"`
	Services          []ECSService `json:"services" bson:"services"`
}

type ECSService struct {
	ServiceName          string               `json:"serviceName" bson:"service_name"`
	LaunchType           string               `json:"launchType" bson:"launch_type"`
	DesiredCount         int                  `json:"desiredCount" bson:"desired_count"`
	RunningCount         int                  `json:"runningCount" bson:"running_count"`
	NetworkConfiguration NetworkConfiguration `json:"networkConfiguration" bson:"network_configuration"`
}

type NetworkConfiguration struct {
	AwsvpcConfiguration AwsvpcConfiguration `json:"awsvpcConfiguration" bson:"awsvpc_configuration"`
}

type AwsvpcConfiguration struct {
	Subnets        []string `json:"subnets" bson:"subnets"`
	SecurityGroups []string `json:"securityGroups" bson:"security_groups"`
}

// EKS inventory.
type EKS struct {
	Clusters []EKSCluster `json:"clusters" bson:"clusters"`
}

type EKSCluster struct {
	Name               string             `json:"name" bson:"name"`
	Status             string             `json:"status" bson:"status"`
	Version            string             `json:"version" bson:"version"`
	ResourcesVpcConfig ResourcesVpcConfig `json:"resourcesVpcConfig" bson:"resources_vpc_config"`
}

type ResourcesVpcConfig struct {
	VpcID string `json:"vpcId" bson:"vpc_id"`
}

// ELB inventory (v2 load balancers and target groups).
type ELB struct {
	LoadBalancersV2 []LoadBalancer `json:"load_balancers_v2" bson:"load_balancers_v2"`
	TargetGroups    []TargetGroup  `json:"target_groups" bson:"target_groups"`
}

type LoadBalancer struct {
	LoadBalancerName  string     `json:"LoadBalancerName" bson:"load_balancer_name"`
	LoadBalancerArn   string     `json:"LoadBalancerArn" bson:"load_balancer_arn"`
	DNSName           string     `json:"DNSName" bson:"dns_name"`
	Type              string     `json:"Type" bson:"type"`
	State             LBState    `json:"State" bson:"state"`
	VpcID             string     `json:"VpcId" bson:"vpc_id"`
	SecurityGroups    []string   `json:"SecurityGroups" bson:"security_groups"`
	AvailabilityZones []LBSubnet `json:"AvailabilityZones" bson:"availability_zones"`
}

type LBState struct {
	Code string `json:"Code" bson:"code"`
}

type LBSubnet struct {
	SubnetID string `json:"SubnetId" bson:"subnet_id"`
}

type TargetGroup struct {
	TargetGroupName  string   `json:"TargetGroupName" bson:"target_group_name"`
	Protocol         string   `json:"Protocol" bson:"protocol"`
	Port             int      `json:"Port" bson:"port"`
	TargetType       string   `json:"TargetType" bson:"target_type"`
	LoadBalancerArns []string `json:"LoadBalancerArns" bson:"load_balancer_arns"`
}

// DynamoDB inventory.
type DynamoDB struct {
	Tables []Table `json:"tables" bson:"tables"`
}

type Table struct {
	TableName   string `json:"TableName" bson:"table_name"`
	TableStatus string `json:"TableStatus" bson:"table_status"`
	ItemCount   int    `json:"ItemCount" bson:"item_count"`
}

// SQS inventory.
type SQS struct {
	Queues []Queue `json:"queues" bson:"queues"`
}

type Queue struct {
	URL        string            `json:"url" bson:"url"`
	Attributes map[string]string `json:"attributes" bson:"attributes"`
}

// SNS inventory.
type SNS struct {
	Topics []Topic `json:"topics" bson:"topics"`
}

type Topic struct {
	TopicArn   string            `json:"TopicArn" bson:"topic_arn"`
	Attributes map[string]string `json:"attributes" bson:"attributes"`
}

// SecretsManager inventory.
type SecretsManager struct {
	Secrets []Secret `json:"secrets" bson:"secrets"`
}

type Secret struct {
	Name string `json:"Name" bson:"name"`
}

// KMS inventory.
type KMS struct {
	Keys []Key `json:"keys" bson:"keys"`
}

type Key struct {
	KeyID       string `json:"KeyId" bson:"key_id"`
	Description string `json:"Description" bson:"description"`
	KeyState    string `json:"KeyState" bson:"key_state"`
}

// CloudFormation inventory.
type CloudFormation struct {
	Stacks []Stack `json:"stacks" bson:"stacks"`
}

type Stack struct {
	StackName   string `json:"StackName" bson:"stack_name"`
	StackStatus string `json:"StackStatus" bson:"stack_status"`
}

// APIGateway inventory.
type APIGateway struct {
	RestAPIs []RestAPI `json:"rest_apis" bson:"rest_apis"`
}

type RestAPI struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// ACM inventory.
type ACM struct {
	Certificates []Certificate `json:"certificates" bson:"certificates"`
}

type Certificate struct {
	CertificateArn string `json:"CertificateArn" bson:"certificate_arn"`
	DomainName     string `json:"DomainName" bson:"domain_name"`
	Status         string `json:"Status" bson:"status"`
}

// CloudTrail inventory.
type CloudTrail struct {
	Trails []Trail `json:"trails" bson:"trails"`
}

type Trail struct {
	Name               string `json:"Name" bson:"name"`
	S3BucketName       string `json:"S3BucketName" bson:"s3_bucket_name"`
	IsMultiRegionTrail bool   `json:"IsMultiRegionTrail" bson:"is_multi_region_trail"`
}

// ElastiCache inventory.
type ElastiCache struct {
	Clusters []CacheCluster `json:"clusters" bson:"clusters"`
}

type CacheCluster struct {
	CacheClusterID     string `json:"CacheClusterId" bson:"cache_cluster_id"`
	Engine             string `json:"Engine" bson:"engine"`
	CacheClusterStatus string `json:"CacheClusterStatus" bson:"cache_cluster_status"`
}

// EFS inventory.
type EFS struct {
	FileSystems []FileSystem `json:"file_systems" bson:"file_systems"`
}

type FileSystem struct {
	FileSystemID string `json:"FileSystemId" bson:"file_system_id"`
	Name         string `json:"Name" bson:"name"`
}
