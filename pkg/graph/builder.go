package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cloudscope/cloudscope/pkg/inventory"
)

// Report summarizes one graph build. Duplicate ids and dropped edges are
// counted rather than silently resolved so callers can surface them.
type Report struct {
	Nodes        int `json:"nodes"`
	Edges        int `json:"edges"`
	DuplicateIDs int `json:"duplicate_ids"` // id collisions, resolved last-write-wins
	DroppedEdges int `json:"dropped_edges"` // edges referencing a missing node id
	ErrorNodes   int `json:"error_nodes"`   // collection failures surfaced as nodes
}

// Build converts the ingested inventory documents into a resource graph.
//
// The build is deterministic for a given document sequence: documents are
// processed in ingestion order and map-keyed sections (regions, error
// regions) in sorted key order. A node id appearing twice - within a document
// or across documents - is resolved last-write-wins and counted in the
// report. Edges whose endpoints never materialize are dropped and counted,
// never emitted: the resulting graph contains no dangling references.
func Build(docs []*inventory.Document) (*Graph, Report) {
	b := &builder{index: make(map[string]int)}
	for _, doc := range docs {
		b.addDocument(doc)
	}
	b.deriveTrafficFlow()

	// Reference validation: keep only edges with both endpoints present.
	kept := make([]Edge, 0, len(b.edges))
	dropped := 0
	for _, e := range b.edges {
		if _, ok := b.index[e.Source]; !ok {
			dropped++
			continue
		}
		if _, ok := b.index[e.Target]; !ok {
			dropped++
			continue
		}
		kept = append(kept, e)
	}

	g := New(b.nodes, kept)
	return g, Report{
		Nodes:        len(b.nodes),
		Edges:        len(kept),
		DuplicateIDs: b.duplicates,
		DroppedEdges: dropped,
		ErrorNodes:   b.errorNodes,
	}
}

type builder struct {
	nodes      []Node
	edges      []Edge
	index      map[string]int
	duplicates int
	errorNodes int
	errorSeq   int

	// target security group -> rules that reference another group as source
	inboundRefs map[string][]inboundRef

	// IAM role ARN -> role node id, for resolving lambda execution roles
	roleByArn map[string]string
}

type inboundRef struct {
	source string // referencing group id (traffic originator)
	label  string // proto:port summary
}

func (b *builder) addNode(n Node) {
	if n.Region == "" {
		n.Region = "global"
	}
	if i, ok := b.index[n.ID]; ok {
		b.nodes[i] = n
		b.duplicates++
		return
	}
	b.index[n.ID] = len(b.nodes)
	b.nodes = append(b.nodes, n)
}

func (b *builder) addEdge(source, target, label string, t EdgeType) {
	b.edges = append(b.edges, Edge{Source: source, Target: target, Type: t, Label: label})
}

func (b *builder) addDocument(doc *inventory.Document) {
	b.addGlobal(doc)

	regions := make([]string, 0, len(doc.RegionalServices))
	for r := range doc.RegionalServices {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	for _, region := range regions {
		b.addRegion(region, doc.RegionalServices[region])
	}

	b.addErrors(doc.Errors)
}

// ----- global services -----

func (b *builder) addGlobal(doc *inventory.Document) {
	gs := doc.GlobalServices

	if iam := gs.IAM; iam != nil {
		for _, u := range iam.Users {
			uid := firstNonEmpty(u.UserID, u.UserName)
			name := firstNonEmpty(u.UserName, uid)
			active := 0
			for _, k := range u.AccessKeys {
				if k.Status == "Active" {
					active++
				}
			}
			b.addNode(Node{
				ID: "iam-user:" + uid, Label: name, Type: TypeIAMUser,
				Region: "global", Service: "iam",
				Metadata: Metadata{
					"arn":         String(u.Arn),
					"mfa_enabled": Bool(len(u.MFADevices) > 0),
					"active_keys": Number(float64(active)),
				},
			})
			for _, p := range u.AttachedPolicies {
				pid := firstNonEmpty(p.PolicyArn, p.PolicyName)
				b.addNode(Node{
					ID: "iam-policy:" + pid, Label: firstNonEmpty(p.PolicyName, pid),
					Type: TypeIAMPolicy, Region: "global", Service: "iam",
				})
				b.addEdge("iam-user:"+uid, "iam-policy:"+pid, "attached", EdgeIdentity)
			}
		}
		for _, r := range iam.Roles {
			rid := firstNonEmpty(r.RoleID, r.RoleName)
			b.addNode(Node{
				ID: "iam-role:" + rid, Label: firstNonEmpty(r.RoleName, rid),
				Type: TypeIAMRole, Region: "global", Service: "iam",
				Metadata: Metadata{"arn": String(r.Arn)},
			})
			if r.Arn != "" {
				if b.roleByArn == nil {
					b.roleByArn = make(map[string]string)
				}
				b.roleByArn[r.Arn] = rid
			}
		}
	}

	if s3 := gs.S3; s3 != nil {
		for _, bk := range s3.Buckets {
			meta := Metadata{"encryption": String(bk.SSEAlgorithm())}
			if len(bk.Tagging) > 0 {
				tags := make(map[string]Value, len(bk.Tagging))
				for _, t := range bk.Tagging {
					tags[t.Key] = String(t.Value)
				}
				meta["tags"] = Mapping(tags)
			}
			b.addNode(Node{
				ID: "s3:" + bk.Name, Label: bk.Name, Type: TypeS3Bucket,
				Region: "global", Service: "s3", Metadata: meta,
			})
		}
	}

	if r53 := gs.Route53; r53 != nil {
		for _, z := range r53.HostedZones {
			zid := z.ID
			if i := strings.LastIndex(zid, "/"); i >= 0 {
				zid = zid[i+1:]
			}
			b.addNode(Node{
				ID: "r53:" + zid, Label: firstNonEmpty(z.Name, zid),
				Type: TypeRoute53Zone, Region: "global", Service: "route53",
			})
			for _, rs := range z.RecordSets {
				rid := fmt.Sprintf("r53-rec:%s:%s:%s", zid, rs.Name, rs.Type)
				b.addNode(Node{
					ID: rid, Label: fmt.Sprintf("%s (%s)", rs.Name, rs.Type),
					Type: TypeRoute53Record, Region: "global", Service: "route53",
					Metadata: Metadata{"type": String(rs.Type)},
				})
				b.addEdge("r53:"+zid, rid, "contains", EdgeDNS)

				if rs.AliasTarget == nil || gs.CloudFront == nil {
					continue
				}
				dns := rs.AliasTarget.DNSName
				if !strings.Contains(dns, "cloudfront.net") {
					continue
				}
				for _, d := range gs.CloudFront.Distributions {
					if d.DomainName != "" && strings.HasSuffix(strings.TrimSuffix(dns, "."), strings.TrimSuffix(d.DomainName, ".")) {
						b.addEdge(rid, "cf:"+d.ID, "alias-to", EdgeDNS)
					}
				}
			}
		}
	}

	if cf := gs.CloudFront; cf != nil {
		for _, d := range cf.Distributions {
			b.addNode(Node{
				ID: "cf:" + d.ID, Label: firstNonEmpty(d.DomainName, d.ID),
				Type: TypeCloudFront, Region: "global", Service: "cloudfront",
				Metadata: Metadata{"status": String(d.Status)},
			})
			for _, o := range d.Origins.Items {
				if bucket, ok := s3OriginBucket(o.DomainName); ok {
					b.addEdge("cf:"+d.ID, "s3:"+bucket, "origin", EdgeCDN)
				}
			}
		}
	}
}

// s3OriginBucket extracts the bucket name from an S3 origin domain.
func s3OriginBucket(domain string) (string, bool) {
	if strings.Contains(domain, ".s3.") {
		return domain[:strings.Index(domain, ".s3.")], true
	}
	if strings.HasSuffix(domain, ".s3.amazonaws.com") {
		return strings.TrimSuffix(domain, ".s3.amazonaws.com"), true
	}
	return "", false
}

// ----- regional services -----

func (b *builder) addRegion(region string, svc inventory.RegionalServices) {
	if ec2 := svc.EC2; ec2 != nil {
		b.addEC2(region, ec2)
	}

	if rds := svc.RDS; rds != nil {
		for _, db := range rds.DBInstances {
			id := "rds:" + db.DBInstanceIdentifier
			b.addNode(Node{
				ID: id, Label: firstNonEmpty(inventory.NameTag(db.Tags), db.DBInstanceIdentifier),
				Type: TypeRDSInstance, Region: region, Service: "rds",
				Metadata: Metadata{
					"engine":    String(db.Engine),
					"class":     String(db.DBInstanceClass),
					"status":    String(db.DBInstanceStatus),
					"endpoint":  String(db.Endpoint.Address),
					"port":      Number(float64(db.Endpoint.Port)),
					"multi_az":  Bool(db.MultiAZ),
					"encrypted": Bool(db.StorageEncrypted),
				},
			})
			if db.DBSubnetGroup.VpcID != "" {
				b.addEdge("vpc:"+db.DBSubnetGroup.VpcID, id, "hosts", EdgeContainment)
			}
			for _, sg := range db.VpcSecurityGroups {
				b.addEdge(id, "sg:"+sg.VpcSecurityGroupID, "member-of", EdgeMembership)
			}
		}
		for _, cl := range rds.DBClusters {
			b.addNode(Node{
				ID: "rds-cluster:" + cl.DBClusterIdentifier,
				Label: firstNonEmpty(inventory.NameTag(cl.Tags), cl.DBClusterIdentifier),
				Type: TypeRDSCluster, Region: region, Service: "rds",
				Metadata: Metadata{"engine": String(cl.Engine), "status": String(cl.Status)},
			})
		}
	}

	if lam := svc.Lambda; lam != nil {
		for _, fn := range lam.Functions {
			id := "lambda:" + fn.FunctionName
			b.addNode(Node{
				ID: id, Label: fn.FunctionName, Type: TypeLambdaFunction,
				Region: region, Service: "lambda",
				Metadata: Metadata{
					"runtime": String(fn.Runtime),
					"vpc":     String(fn.VpcConfig.VpcID),
					"memory":  Number(float64(fn.MemorySize)),
				},
			})
			if fn.VpcConfig.VpcID != "" {
				for _, sid := range fn.VpcConfig.SubnetIDs {
					b.addEdge("subnet:"+sid, id, "hosts", EdgeContainment)
				}
				for _, sg := range fn.VpcConfig.SecurityGroupIDs {
					b.addEdge(id, "sg:"+sg, "member-of", EdgeMembership)
				}
			}
			if rid, ok := b.roleByArn[fn.Role]; ok {
				b.addEdge(id, "iam-role:"+rid, "assumes", EdgeIdentity)
			}
		}
	}

	if ecs := svc.ECS; ecs != nil {
		for _, cl := range ecs.Clusters {
			cid := "ecs-cluster:" + cl.ClusterName
			b.addNode(Node{
				ID: cid, Label: cl.ClusterName, Type: TypeECSCluster,
				Region: region, Service: "ecs",
				Metadata: Metadata{
					"status":        String(cl.Status),
					"running_tasks": Number(float64(cl.RunningTasksCount)),
				},
			})
			for _, s := range cl.Services {
				sid := fmt.Sprintf("ecs-svc:%s/%s", cl.ClusterName, s.ServiceName)
				b.addNode(Node{
					ID: sid, Label: s.ServiceName, Type: TypeECSService,
					Region: region, Service: "ecs",
					Metadata: Metadata{
						"launch_type": String(s.LaunchType),
						"desired":     Number(float64(s.DesiredCount)),
						"running":     Number(float64(s.RunningCount)),
					},
				})
				b.addEdge(cid, sid, "runs", EdgeCompute)
				cfg := s.NetworkConfiguration.AwsvpcConfiguration
				for _, sn := range cfg.Subnets {
					b.addEdge("subnet:"+sn, sid, "hosts", EdgeContainment)
				}
				for _, sg := range cfg.SecurityGroups {
					b.addEdge(sid, "sg:"+sg, "member-of", EdgeMembership)
				}
			}
		}
	}

	if eks := svc.EKS; eks != nil {
		for _, cl := range eks.Clusters {
			id := "eks:" + cl.Name
			b.addNode(Node{
				ID: id, Label: cl.Name, Type: TypeEKSCluster,
				Region: region, Service: "eks",
				Metadata: Metadata{"status": String(cl.Status), "version": String(cl.Version)},
			})
			if v := cl.ResourcesVpcConfig.VpcID; v != "" {
				b.addEdge("vpc:"+v, id, "hosts", EdgeContainment)
			}
		}
	}

	if elb := svc.ELB; elb != nil {
		for _, lb := range elb.LoadBalancersV2 {
			id := "alb:" + lb.LoadBalancerName
			b.addNode(Node{
				ID:    id,
				Label: fmt.Sprintf("%s (%s)", lb.LoadBalancerName, firstNonEmpty(lb.Type, "alb")),
				Type:  TypeLoadBalancer, Region: region, Service: "elb",
				Metadata: Metadata{
					"dns":   String(lb.DNSName),
					"type":  String(lb.Type),
					"state": String(lb.State.Code),
				},
			})
			if lb.VpcID != "" {
				b.addEdge("vpc:"+lb.VpcID, id, "hosts", EdgeContainment)
			}
			for _, sg := range lb.SecurityGroups {
				b.addEdge(id, "sg:"+sg, "member-of", EdgeMembership)
			}
			for _, az := range lb.AvailabilityZones {
				if az.SubnetID != "" {
					b.addEdge("subnet:"+az.SubnetID, id, "hosts", EdgeContainment)
				}
			}
		}
		for _, tg := range elb.TargetGroups {
			id := "tg:" + tg.TargetGroupName
			b.addNode(Node{
				ID: id, Label: tg.TargetGroupName, Type: TypeTargetGroup,
				Region: region, Service: "elb",
				Metadata: Metadata{
					"protocol":    String(tg.Protocol),
					"port":        Number(float64(tg.Port)),
					"target_type": String(tg.TargetType),
				},
			})
			for _, arn := range tg.LoadBalancerArns {
				for _, lb := range elb.LoadBalancersV2 {
					if lb.LoadBalancerArn == arn {
						b.addEdge("alb:"+lb.LoadBalancerName, id, "routes-to", EdgeTrafficFlow)
					}
				}
			}
		}
	}

	if ddb := svc.DynamoDB; ddb != nil {
		for _, t := range ddb.Tables {
			b.addNode(Node{
				ID: "ddb:" + t.TableName, Label: t.TableName, Type: TypeDynamoTable,
				Region: region, Service: "dynamodb",
				Metadata: Metadata{
					"status":     String(t.TableStatus),
					"item_count": Number(float64(t.ItemCount)),
				},
			})
		}
	}

	if sqs := svc.SQS; sqs != nil {
		for _, q := range sqs.Queues {
			name := q.URL
			if i := strings.LastIndex(name, "/"); i >= 0 {
				name = name[i+1:]
			}
			meta := Metadata{}
			if msgs, ok := q.Attributes["ApproximateNumberOfMessages"]; ok {
				meta["messages"] = String(msgs)
			}
			b.addNode(Node{
				ID: "sqs:" + name, Label: name, Type: TypeSQSQueue,
				Region: region, Service: "sqs", Metadata: meta,
			})
		}
	}

	if sns := svc.SNS; sns != nil {
		for _, t := range sns.Topics {
			name := t.TopicArn
			if i := strings.LastIndex(name, ":"); i >= 0 {
				name = name[i+1:]
			}
			b.addNode(Node{
				ID: "sns:" + name, Label: firstNonEmpty(t.Attributes["DisplayName"], name),
				Type: TypeSNSTopic, Region: region, Service: "sns",
			})
		}
	}

	if sm := svc.SecretsManager; sm != nil {
		for _, s := range sm.Secrets {
			b.addNode(Node{
				ID: "secret:" + s.Name, Label: s.Name, Type: TypeSecret,
				Region: region, Service: "secrets_manager",
			})
		}
	}

	if kms := svc.KMS; kms != nil {
		for _, k := range kms.Keys {
			b.addNode(Node{
				ID: "kms:" + k.KeyID, Label: firstNonEmpty(k.Description, k.KeyID),
				Type: TypeKMSKey, Region: region, Service: "kms",
				Metadata: Metadata{"state": String(k.KeyState)},
			})
		}
	}

	if cfn := svc.CloudFormation; cfn != nil {
		for _, st := range cfn.Stacks {
			b.addNode(Node{
				ID: "cfn:" + st.StackName, Label: st.StackName, Type: TypeCfnStack,
				Region: region, Service: "cloudformation",
				Metadata: Metadata{"status": String(st.StackStatus)},
			})
		}
	}

	if apigw := svc.APIGateway; apigw != nil {
		for _, api := range apigw.RestAPIs {
			b.addNode(Node{
				ID: "apigw:" + api.ID, Label: firstNonEmpty(api.Name, api.ID),
				Type: TypeAPIGateway, Region: region, Service: "api_gateway",
			})
		}
	}

	if acm := svc.ACM; acm != nil {
		for _, c := range acm.Certificates {
			domain := firstNonEmpty(c.DomainName, c.CertificateArn)
			b.addNode(Node{
				ID: "acm:" + domain, Label: domain, Type: TypeACMCert,
				Region: region, Service: "acm",
				Metadata: Metadata{"status": String(c.Status)},
			})
		}
	}

	if ct := svc.CloudTrail; ct != nil {
		for _, tr := range ct.Trails {
			id := "trail:" + tr.Name
			b.addNode(Node{
				ID: id, Label: tr.Name, Type: TypeCloudTrail,
				Region: region, Service: "cloudtrail",
				Metadata: Metadata{"multi_region": Bool(tr.IsMultiRegionTrail)},
			})
			if tr.S3BucketName != "" {
				b.addEdge(id, "s3:"+tr.S3BucketName, "logs-to", EdgeLogging)
			}
		}
	}

	if ec := svc.ElastiCache; ec != nil {
		for _, c := range ec.Clusters {
			b.addNode(Node{
				ID: "ecache:" + c.CacheClusterID, Label: c.CacheClusterID,
				Type: TypeElastiCache, Region: region, Service: "elasticache",
				Metadata: Metadata{
					"engine": String(c.Engine),
					"status": String(c.CacheClusterStatus),
				},
			})
		}
	}

	if efs := svc.EFS; efs != nil {
		for _, fs := range efs.FileSystems {
			b.addNode(Node{
				ID: "efs:" + fs.FileSystemID, Label: firstNonEmpty(fs.Name, fs.FileSystemID),
				Type: TypeEFS, Region: region, Service: "efs",
			})
		}
	}
}

func (b *builder) addEC2(region string, ec2 *inventory.EC2) {
	for _, v := range ec2.Vpcs {
		name := firstNonEmpty(inventory.NameTag(v.Tags), v.VpcID)
		b.addNode(Node{
			ID: "vpc:" + v.VpcID, Label: fmt.Sprintf("%s (%s)", name, v.CidrBlock),
			Type: TypeVpc, Region: region, Service: "ec2",
			Metadata: Metadata{"cidr": String(v.CidrBlock), "state": String(v.State)},
		})
	}

	for _, s := range ec2.Subnets {
		name := firstNonEmpty(inventory.NameTag(s.Tags), s.SubnetID)
		id := "subnet:" + s.SubnetID
		b.addNode(Node{
			ID: id, Label: fmt.Sprintf("%s (%s)", name, s.CidrBlock),
			Type: TypeSubnet, Region: region, Service: "ec2",
			Metadata: Metadata{
				"az":     String(s.AvailabilityZone),
				"cidr":   String(s.CidrBlock),
				"public": Bool(s.MapPublicIPOnLaunch),
			},
		})
		if s.VpcID != "" {
			b.addEdge("vpc:"+s.VpcID, id, "contains", EdgeContainment)
		}
	}

	for _, sg := range ec2.SecurityGroups {
		id := "sg:" + sg.GroupID
		var rules []string
		for _, rule := range sg.IPPermissions {
			proto, ports := ruleProtoPorts(rule)
			for _, r := range rule.IPRanges {
				rules = append(rules, fmt.Sprintf("%s:%s from %s", proto, ports, r.CidrIP))
			}
			for _, pair := range rule.UserIDGroupPairs {
				rules = append(rules, fmt.Sprintf("%s:%s from %s", proto, ports, pair.GroupID))
				if pair.GroupID != "" {
					if b.inboundRefs == nil {
						b.inboundRefs = make(map[string][]inboundRef)
					}
					b.inboundRefs[sg.GroupID] = append(b.inboundRefs[sg.GroupID], inboundRef{
						source: pair.GroupID,
						label:  fmt.Sprintf("%s:%s", proto, ports),
					})
				}
			}
		}

		meta := Metadata{"vpc": String(sg.VpcID)}
		if len(rules) > 0 {
			meta[MetaInboundRules] = Strings(rules)
		}
		b.addNode(Node{
			ID: id, Label: firstNonEmpty(sg.GroupName, sg.GroupID),
			Type: TypeSecurityGroup, Region: region, Service: "ec2", Metadata: meta,
		})
		if sg.VpcID != "" {
			b.addEdge("vpc:"+sg.VpcID, id, "contains", EdgeContainment)
		}
	}

	for _, igw := range ec2.InternetGateways {
		id := "igw:" + igw.InternetGatewayID
		b.addNode(Node{
			ID: id, Label: firstNonEmpty(inventory.NameTag(igw.Tags), igw.InternetGatewayID),
			Type: TypeInternetGW, Region: region, Service: "ec2",
		})
		for _, att := range igw.Attachments {
			if att.VpcID != "" {
				b.addEdge("vpc:"+att.VpcID, id, "attached", EdgeContainment)
			}
		}
	}

	for _, nat := range ec2.NatGateways {
		id := "nat:" + nat.NatGatewayID
		b.addNode(Node{
			ID: id, Label: firstNonEmpty(inventory.NameTag(nat.Tags), nat.NatGatewayID),
			Type: TypeNatGW, Region: region, Service: "ec2",
			Metadata: Metadata{"state": String(nat.State)},
		})
		if nat.SubnetID != "" {
			b.addEdge("subnet:"+nat.SubnetID, id, "hosts", EdgeContainment)
		}
		if nat.VpcID != "" {
			b.addEdge("vpc:"+nat.VpcID, id, "contains", EdgeContainment)
		}
	}

	for _, res := range ec2.Instances {
		for _, inst := range res.Instances {
			id := "ec2:" + inst.InstanceID
			b.addNode(Node{
				ID: id, Label: firstNonEmpty(inventory.NameTag(inst.Tags), inst.InstanceID),
				Type: TypeEC2Instance, Region: region, Service: "ec2",
				Metadata: Metadata{
					"instance_type": String(inst.InstanceType),
					"state":         String(firstNonEmpty(inst.State.Name, "unknown")),
					"private_ip":    String(inst.PrivateIPAddress),
					"public_ip":     String(inst.PublicIPAddress),
					"vpc":           String(inst.VpcID),
					"subnet":        String(inst.SubnetID),
				},
			})
			if inst.SubnetID != "" {
				b.addEdge("subnet:"+inst.SubnetID, id, "hosts", EdgeContainment)
			}
			for _, sg := range inst.SecurityGroups {
				b.addEdge(id, "sg:"+sg.GroupID, "member-of", EdgeMembership)
			}
		}
	}

	for _, pc := range ec2.VpcPeeringConnections {
		id := "pcx:" + pc.VpcPeeringConnectionID
		b.addNode(Node{
			ID: id, Label: pc.VpcPeeringConnectionID, Type: TypeVpcPeering,
			Region: region, Service: "ec2",
			Metadata: Metadata{"status": String(firstNonEmpty(pc.Status.Code, "unknown"))},
		})
		if v := pc.RequesterVpcInfo.VpcID; v != "" {
			b.addEdge("vpc:"+v, id, "requester", EdgeContainment)
		}
		if v := pc.AccepterVpcInfo.VpcID; v != "" {
			b.addEdge("vpc:"+v, id, "accepter", EdgeContainment)
		}
	}

	for _, eip := range ec2.ElasticIPs {
		eid := firstNonEmpty(eip.AllocationID, eip.PublicIP)
		id := "eip:" + eid
		b.addNode(Node{
			ID: id, Label: firstNonEmpty(eip.PublicIP, eid), Type: TypeElasticIP,
			Region: region, Service: "ec2",
		})
		if eip.InstanceID != "" {
			b.addEdge(id, "ec2:"+eip.InstanceID, "associated", EdgeContainment)
		}
	}

	for _, vol := range ec2.Volumes {
		id := "ebs:" + vol.VolumeID
		name := firstNonEmpty(inventory.NameTag(vol.Tags), vol.VolumeID)
		b.addNode(Node{
			ID: id, Label: fmt.Sprintf("%s (%dGB)", name, vol.Size),
			Type: TypeEBSVolume, Region: region, Service: "ec2",
			Metadata: Metadata{
				"size_gb": Number(float64(vol.Size)),
				"state":   String(vol.State),
			},
		})
		for _, att := range vol.Attachments {
			if att.InstanceID != "" {
				b.addEdge("ec2:"+att.InstanceID, id, "attached", EdgeStorage)
			}
		}
	}
}

// ruleProtoPorts renders a security group rule's protocol and port range.
// Protocol "-1" means all traffic and carries no ports.
func ruleProtoPorts(rule inventory.IPPermission) (proto, ports string) {
	proto = rule.IPProtocol
	if proto == "-1" {
		return "all", "all"
	}
	from, to := 0, 0
	if rule.FromPort != nil {
		from = *rule.FromPort
	}
	if rule.ToPort != nil {
		to = *rule.ToPort
	}
	if from == to {
		return proto, fmt.Sprintf("%d", from)
	}
	return proto, fmt.Sprintf("%d-%d", from, to)
}

// deriveTrafficFlow turns security group inbound cross-references into
// directed traffic-flow edges: a rule on target allowing source means traffic
// flows source -> target.
func (b *builder) deriveTrafficFlow() {
	targets := make([]string, 0, len(b.inboundRefs))
	for t := range b.inboundRefs {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	for _, target := range targets {
		for _, ref := range b.inboundRefs[target] {
			b.addEdge("sg:"+ref.source, "sg:"+target, ref.label, EdgeTrafficFlow)
		}
	}
}

// addErrors surfaces collection failures as error-typed nodes so partial
// inventories stay explorable instead of disappearing.
func (b *builder) addErrors(report inventory.ErrorReport) {
	for _, e := range report.Global {
		b.addErrorNode("global", e)
	}
	regions := make([]string, 0, len(report.Regional))
	for r := range report.Regional {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	for _, region := range regions {
		for _, e := range report.Regional[region] {
			b.addErrorNode(region, e)
		}
	}
}

func (b *builder) addErrorNode(region string, e inventory.AccessError) {
	b.errorSeq++
	b.errorNodes++
	b.addNode(Node{
		ID:    fmt.Sprintf("error:%s:%d", region, b.errorSeq),
		Label: "⚠ " + e.Resource,
		Type:  TypeError, Region: region, Service: "error",
		Metadata: Metadata{
			"code":    String(e.Code),
			"message": String(e.Message),
		},
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
