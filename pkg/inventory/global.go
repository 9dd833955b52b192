package inventory

// GlobalServices holds account-wide (non-regional) service inventories.
type GlobalServices struct {
	IAM        *IAM        `json:"iam,omitempty" bson:"iam,omitempty"`
	S3         *S3         `json:"s3,omitempty" bson:"s3,omitempty"`
	Route53    *Route53    `json:"route53,omitempty" bson:"route53,omitempty"`
	CloudFront *CloudFront `json:"cloudfront,omitempty" bson:"cloudfront,omitempty"`
}

// IAM inventory: users, roles, and their policy attachments.
type IAM struct {
	Users []IAMUser `json:"users" bson:"users"`
	Roles []IAMRole `json:"roles" bson:"roles"`
}

type IAMUser struct {
	UserID           string      `json:"UserId" bson:"user_id"`
	UserName         string      `json:"UserName" bson:"user_name"`
	Arn              string      `json:"Arn" bson:"arn"`
	MFADevices       []MFADevice `json:"mfa_devices" bson:"mfa_devices"`
	AccessKeys       []AccessKey `json:"access_keys" bson:"access_keys"`
	AttachedPolicies []IAMPolicy `json:"attached_policies" bson:"attached_policies"`
}

type MFADevice struct {
	SerialNumber string `json:"SerialNumber" bson:"serial_number"`
}

type AccessKey struct {
	AccessKeyID string `json:"AccessKeyId" bson:"access_key_id"`
	Status      string `json:"Status" bson:"status"`
}

type IAMPolicy struct {
	PolicyName string `json:"PolicyName" bson:"policy_name"`
	PolicyArn  string `json:"PolicyArn" bson:"policy_arn"`
}

type IAMRole struct {
	RoleID   string `json:"RoleId" bson:"role_id"`
	RoleName string `json:"RoleName" bson:"role_name"`
	Arn      string `json:"Arn" bson:"arn"`
}

// S3 inventory.
type S3 struct {
	Buckets []Bucket `json:"buckets" bson:"buckets"`
}

type Bucket struct {
	Name       string            `json:"Name" bson:"name"`
	Encryption *BucketEncryption `json:"encryption,omitempty" bson:"encryption,omitempty"`
	Tagging    []Tag             `json:"tagging" bson:"tagging"`
}

type BucketEncryption struct {
	ServerSideEncryptionConfiguration SSEConfiguration `json:"ServerSideEncryptionConfiguration" bson:"sse_configuration"`
}

type SSEConfiguration struct {
	Rules []SSERule `json:"Rules" bson:"rules"`
}

type SSERule struct {
	ApplyServerSideEncryptionByDefault SSEDefault `json:"ApplyServerSideEncryptionByDefault" bson:"apply_by_default"`
}

type SSEDefault struct {
	SSEAlgorithm string `json:"SSEAlgorithm" bson:"sse_algorithm"`
}

// SSEAlgorithm returns the default server-side encryption algorithm for the
// bucket, "none" if encryption is not configured, or "unknown" if the
// configuration is present but carries no rules.
func (b *Bucket) SSEAlgorithm() string {
	if b.Encryption == nil {
		return "none"
	}
	rules := b.Encryption.ServerSideEncryptionConfiguration.Rules
	if len(rules) == 0 {
		return "unknown"
	}
	if alg := rules[0].ApplyServerSideEncryptionByDefault.SSEAlgorithm; alg != "" {
		return alg
	}
	return "unknown"
}

// Route53 inventory: hosted zones and their record sets.
type Route53 struct {
	HostedZones []HostedZone `json:"hosted_zones" bson:"hosted_zones"`
}

type HostedZone struct {
	ID         string      `json:"Id" bson:"id"`
	Name       string      `json:"Name" bson:"name"`
	RecordSets []RecordSet `json:"record_sets" bson:"record_sets"`
}

type RecordSet struct {
	Name        string       `json:"Name" bson:"name"`
	Type        string       `json:"Type" bson:"type"`
	AliasTarget *AliasTarget `json:"AliasTarget,omitempty" bson:"alias_target,omitempty"`
}

type AliasTarget struct {
	DNSName string `json:"DNSName" bson:"dns_name"`
}

// CloudFront inventory.
type CloudFront struct {
	Distributions []Distribution `json:"distributions" bson:"distributions"`
}

type Distribution struct {
	ID         string  `json:"Id" bson:"id"`
	DomainName string  `json:"DomainName" bson:"domain_name"`
	Status     string  `json:"Status" bson:"status"`
	Origins    Origins `json:"Origins" bson:"origins"`
}

type Origins struct {
	Items []Origin `json:"Items" bson:"items"`
}

type Origin struct {
	DomainName string `json:"DomainName" bson:"domain_name"`
}
