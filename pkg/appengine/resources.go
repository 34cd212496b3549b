package appengine

import "time"

// Schema names the wire representation of a request or response body.
type Schema string

// Schemas used by the Admin API endpoints.
const (
	SchemaNone                     Schema = ""
	SchemaApplication              Schema = "Application"
	SchemaService                  Schema = "Service"
	SchemaVersion                  Schema = "Version"
	SchemaInstance                 Schema = "Instance"
	SchemaOperation                Schema = "Operation"
	SchemaLocation                 Schema = "Location"
	SchemaRepairApplicationRequest Schema = "RepairApplicationRequest"
	SchemaDebugInstanceRequest     Schema = "DebugInstanceRequest"
	SchemaListServicesResponse     Schema = "ListServicesResponse"
	SchemaListVersionsResponse     Schema = "ListVersionsResponse"
	SchemaListInstancesResponse    Schema = "ListInstancesResponse"
	SchemaListOperationsResponse   Schema = "ListOperationsResponse"
	SchemaListLocationsResponse    Schema = "ListLocationsResponse"
)

// VersionView controls how much of a Version is returned by list and get.
type VersionView string

const (
	VersionViewBasic VersionView = "BASIC"
	VersionViewFull  VersionView = "FULL"
)

// Application is the top-level App Engine resource for a project.
type Application struct {
	Name                    string                `json:"name,omitempty"                    yaml:"name,omitempty"`
	ID                      string                `json:"id,omitempty"                      yaml:"id,omitempty"`
	DispatchRules           []URLDispatchRule     `json:"dispatchRules,omitempty"           yaml:"dispatch_rules,omitempty"`
	AuthDomain              string                `json:"authDomain,omitempty"              yaml:"auth_domain,omitempty"`
	LocationID              string                `json:"locationId,omitempty"              yaml:"location_id,omitempty"`
	CodeBucket              string                `json:"codeBucket,omitempty"              yaml:"code_bucket,omitempty"`
	DefaultCookieExpiration string                `json:"defaultCookieExpiration,omitempty" yaml:"default_cookie_expiration,omitempty"`
	ServingStatus           string                `json:"servingStatus,omitempty"           yaml:"serving_status,omitempty"`
	DefaultHostname         string                `json:"defaultHostname,omitempty"         yaml:"default_hostname,omitempty"`
	DefaultBucket           string                `json:"defaultBucket,omitempty"           yaml:"default_bucket,omitempty"`
	ServiceAccount          string                `json:"serviceAccount,omitempty"          yaml:"service_account,omitempty"`
	GcrDomain               string                `json:"gcrDomain,omitempty"               yaml:"gcr_domain,omitempty"`
	DatabaseType            string                `json:"databaseType,omitempty"            yaml:"database_type,omitempty"`
	IAP                     *IdentityAwareProxy   `json:"iap,omitempty"                     yaml:"iap,omitempty"`
	FeatureSettings         *FeatureSettings      `json:"featureSettings,omitempty"         yaml:"feature_settings,omitempty"`
	SSLPolicy               string                `json:"sslPolicy,omitempty"               yaml:"ssl_policy,omitempty"`
	Labels                  map[string]string     `json:"labels,omitempty"                  yaml:"labels,omitempty"`
}

// URLDispatchRule routes requests matching Domain and Path to Service.
type URLDispatchRule struct {
	Domain  string `json:"domain,omitempty"  yaml:"domain,omitempty"`
	Path    string `json:"path,omitempty"    yaml:"path,omitempty"`
	Service string `json:"service,omitempty" yaml:"service,omitempty"`
}

// IdentityAwareProxy holds the IAP settings of an application.
type IdentityAwareProxy struct {
	Enabled                  bool   `json:"enabled,omitempty"                  yaml:"enabled,omitempty"`
	OAuth2ClientID           string `json:"oauth2ClientId,omitempty"           yaml:"oauth2_client_id,omitempty"`
	OAuth2ClientSecret       string `json:"oauth2ClientSecret,omitempty"       yaml:"oauth2_client_secret,omitempty"`
	OAuth2ClientSecretSha256 string `json:"oauth2ClientSecretSha256,omitempty" yaml:"oauth2_client_secret_sha256,omitempty"`
}

// FeatureSettings toggles optional application features.
type FeatureSettings struct {
	SplitHealthChecks       bool `json:"splitHealthChecks,omitempty"       yaml:"split_health_checks,omitempty"`
	UseContainerOptimizedOs bool `json:"useContainerOptimizedOs,omitempty" yaml:"use_container_optimized_os,omitempty"`
}

// Service is a logical component of an application, with one or more versions.
type Service struct {
	Name            string            `json:"name,omitempty"            yaml:"name,omitempty"`
	ID              string            `json:"id,omitempty"              yaml:"id,omitempty"`
	Split           *TrafficSplit     `json:"split,omitempty"           yaml:"split,omitempty"`
	Labels          map[string]string `json:"labels,omitempty"          yaml:"labels,omitempty"`
	NetworkSettings *NetworkSettings  `json:"networkSettings,omitempty" yaml:"network_settings,omitempty"`
}

// TrafficSplit describes how traffic is allocated between versions.
type TrafficSplit struct {
	ShardBy     string             `json:"shardBy,omitempty"     yaml:"shard_by,omitempty"`
	Allocations map[string]float64 `json:"allocations,omitempty" yaml:"allocations,omitempty"`
}

// NetworkSettings controls ingress for a service.
type NetworkSettings struct {
	IngressTrafficAllowed string `json:"ingressTrafficAllowed,omitempty" yaml:"ingress_traffic_allowed,omitempty"`
}

// Version is a deployed set of code and configuration for a service.
type Version struct {
	Name                      string             `json:"name,omitempty"                      yaml:"name,omitempty"`
	ID                        string             `json:"id,omitempty"                        yaml:"id,omitempty"`
	Runtime                   string             `json:"runtime,omitempty"                   yaml:"runtime,omitempty"`
	RuntimeChannel            string             `json:"runtimeChannel,omitempty"            yaml:"runtime_channel,omitempty"`
	Env                       string             `json:"env,omitempty"                       yaml:"env,omitempty"`
	ServingStatus             string             `json:"servingStatus,omitempty"             yaml:"serving_status,omitempty"`
	InstanceClass             string             `json:"instanceClass,omitempty"             yaml:"instance_class,omitempty"`
	Threadsafe                bool               `json:"threadsafe,omitempty"                yaml:"threadsafe,omitempty"`
	VM                        bool               `json:"vm,omitempty"                        yaml:"vm,omitempty"`
	AppEngineApis             bool               `json:"appEngineApis,omitempty"             yaml:"app_engine_apis,omitempty"`
	AutomaticScaling          *AutomaticScaling  `json:"automaticScaling,omitempty"          yaml:"automatic_scaling,omitempty"`
	BasicScaling              *BasicScaling      `json:"basicScaling,omitempty"              yaml:"basic_scaling,omitempty"`
	ManualScaling             *ManualScaling     `json:"manualScaling,omitempty"             yaml:"manual_scaling,omitempty"`
	InboundServices           []string           `json:"inboundServices,omitempty"           yaml:"inbound_services,omitempty"`
	EnvVariables              map[string]string  `json:"envVariables,omitempty"              yaml:"env_variables,omitempty"`
	BetaSettings              map[string]string  `json:"betaSettings,omitempty"              yaml:"beta_settings,omitempty"`
	Deployment                *Deployment        `json:"deployment,omitempty"                yaml:"deployment,omitempty"`
	Entrypoint                *Entrypoint        `json:"entrypoint,omitempty"                yaml:"entrypoint,omitempty"`
	ServiceAccount            string             `json:"serviceAccount,omitempty"            yaml:"service_account,omitempty"`
	CreatedBy                 string             `json:"createdBy,omitempty"                 yaml:"created_by,omitempty"`
	CreateTime                *time.Time         `json:"createTime,omitempty"                yaml:"create_time,omitempty"`
	DiskUsageBytes            int64              `json:"diskUsageBytes,omitempty,string"     yaml:"disk_usage_bytes,omitempty"`
	VersionURL                string             `json:"versionUrl,omitempty"                yaml:"version_url,omitempty"`
	NobuildFilesRegex         string             `json:"nobuildFilesRegex,omitempty"         yaml:"nobuild_files_regex,omitempty"`
	DefaultExpiration         string             `json:"defaultExpiration,omitempty"         yaml:"default_expiration,omitempty"`
	ServingStatusUpdateReason string             `json:"servingStatusUpdateReason,omitempty" yaml:"-"`
	Labels                    map[string]string  `json:"labels,omitempty"                    yaml:"labels,omitempty"`
}

// AutomaticScaling scales instances based on request rate and latency.
type AutomaticScaling struct {
	CoolDownPeriod        string                 `json:"coolDownPeriod,omitempty"        yaml:"cool_down_period,omitempty"`
	MaxConcurrentRequests int64                  `json:"maxConcurrentRequests,omitempty" yaml:"max_concurrent_requests,omitempty"`
	MaxIdleInstances      int64                  `json:"maxIdleInstances,omitempty"      yaml:"max_idle_instances,omitempty"`
	MinIdleInstances      int64                  `json:"minIdleInstances,omitempty"      yaml:"min_idle_instances,omitempty"`
	MaxPendingLatency     string                 `json:"maxPendingLatency,omitempty"     yaml:"max_pending_latency,omitempty"`
	MinPendingLatency     string                 `json:"minPendingLatency,omitempty"     yaml:"min_pending_latency,omitempty"`
	MaxTotalInstances     int64                  `json:"maxTotalInstances,omitempty"     yaml:"max_total_instances,omitempty"`
	MinTotalInstances     int64                  `json:"minTotalInstances,omitempty"     yaml:"min_total_instances,omitempty"`
}

// BasicScaling creates instances on request and stops them when idle.
type BasicScaling struct {
	IdleTimeout  string `json:"idleTimeout,omitempty"  yaml:"idle_timeout,omitempty"`
	MaxInstances int64  `json:"maxInstances,omitempty" yaml:"max_instances,omitempty"`
}

// ManualScaling runs a fixed number of instances.
type ManualScaling struct {
	Instances int64 `json:"instances,omitempty" yaml:"instances,omitempty"`
}

// Deployment describes the code artifacts of a version.
type Deployment struct {
	Files     map[string]FileInfo `json:"files,omitempty"     yaml:"files,omitempty"`
	Container *ContainerInfo      `json:"container,omitempty" yaml:"container,omitempty"`
	Zip       *ZipInfo            `json:"zip,omitempty"       yaml:"zip,omitempty"`
}

// FileInfo is a single deployed file.
type FileInfo struct {
	SourceURL string `json:"sourceUrl,omitempty" yaml:"source_url,omitempty"`
	Sha1Sum   string `json:"sha1Sum,omitempty"   yaml:"sha1_sum,omitempty"`
	MimeType  string `json:"mimeType,omitempty"  yaml:"mime_type,omitempty"`
}

// ContainerInfo points at a container image.
type ContainerInfo struct {
	Image string `json:"image,omitempty" yaml:"image,omitempty"`
}

// ZipInfo points at a zip archive of the source.
type ZipInfo struct {
	SourceURL  string `json:"sourceUrl,omitempty"  yaml:"source_url,omitempty"`
	FilesCount int64  `json:"filesCount,omitempty" yaml:"files_count,omitempty"`
}

// Entrypoint is the command used to start the app.
type Entrypoint struct {
	Shell string `json:"shell,omitempty" yaml:"shell,omitempty"`
}

// Instance is a single running instance of a version.
type Instance struct {
	Name             string     `json:"name,omitempty"                  yaml:"name,omitempty"`
	ID               string     `json:"id,omitempty"                    yaml:"id,omitempty"`
	AppEngineRelease string     `json:"appEngineRelease,omitempty"      yaml:"app_engine_release,omitempty"`
	Availability     string     `json:"availability,omitempty"          yaml:"availability,omitempty"`
	VMName           string     `json:"vmName,omitempty"                yaml:"vm_name,omitempty"`
	VMZoneName       string     `json:"vmZoneName,omitempty"            yaml:"vm_zone_name,omitempty"`
	VMID             string     `json:"vmId,omitempty"                  yaml:"vm_id,omitempty"`
	VMStatus         string     `json:"vmStatus,omitempty"              yaml:"vm_status,omitempty"`
	VMDebugEnabled   bool       `json:"vmDebugEnabled,omitempty"        yaml:"vm_debug_enabled,omitempty"`
	VMIP             string     `json:"vmIp,omitempty"                  yaml:"vm_ip,omitempty"`
	VMLiveness       string     `json:"vmLiveness,omitempty"            yaml:"vm_liveness,omitempty"`
	StartTime        *time.Time `json:"startTime,omitempty"             yaml:"start_time,omitempty"`
	Requests         int64      `json:"requests,omitempty"              yaml:"requests,omitempty"`
	Errors           int64      `json:"errors,omitempty"                yaml:"errors,omitempty"`
	Qps              float64    `json:"qps,omitempty"                   yaml:"qps,omitempty"`
	AverageLatency   int64      `json:"averageLatency,omitempty"        yaml:"average_latency,omitempty"`
	MemoryUsage      int64      `json:"memoryUsage,omitempty,string"    yaml:"memory_usage,omitempty"`
}

// Operation is a long-running operation started by a mutating call.
type Operation struct {
	Name     string                 `json:"name,omitempty"     yaml:"name,omitempty"`
	Done     bool                   `json:"done,omitempty"     yaml:"done,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Error    *Status                `json:"error,omitempty"    yaml:"error,omitempty"`
	Response map[string]interface{} `json:"response,omitempty" yaml:"response,omitempty"`
}

// Status is the error model of a failed operation.
type Status struct {
	Code    int                      `json:"code,omitempty"    yaml:"code,omitempty"`
	Message string                   `json:"message,omitempty" yaml:"message,omitempty"`
	Details []map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// Location is a region where an application can run.
type Location struct {
	Name        string                 `json:"name,omitempty"        yaml:"name,omitempty"`
	LocationID  string                 `json:"locationId,omitempty"  yaml:"location_id,omitempty"`
	DisplayName string                 `json:"displayName,omitempty" yaml:"display_name,omitempty"`
	Labels      map[string]string      `json:"labels,omitempty"      yaml:"labels,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"    yaml:"metadata,omitempty"`
}

// RepairApplicationRequest is the body of apps.repair.
type RepairApplicationRequest struct{}

// DebugInstanceRequest is the body of instances.debug.
type DebugInstanceRequest struct {
	SSHKey string `json:"sshKey,omitempty" yaml:"ssh_key,omitempty"`
}

// ListServicesResponse is one page of services.
type ListServicesResponse struct {
	Services      []Service `json:"services,omitempty"      yaml:"services,omitempty"`
	NextPageToken string    `json:"nextPageToken,omitempty" yaml:"next_page_token,omitempty"`
}

// ListVersionsResponse is one page of versions.
type ListVersionsResponse struct {
	Versions      []Version `json:"versions,omitempty"      yaml:"versions,omitempty"`
	NextPageToken string    `json:"nextPageToken,omitempty" yaml:"next_page_token,omitempty"`
}

// ListInstancesResponse is one page of instances.
type ListInstancesResponse struct {
	Instances     []Instance `json:"instances,omitempty"     yaml:"instances,omitempty"`
	NextPageToken string     `json:"nextPageToken,omitempty" yaml:"next_page_token,omitempty"`
}

// ListOperationsResponse is one page of operations.
type ListOperationsResponse struct {
	Operations    []Operation `json:"operations,omitempty"    yaml:"operations,omitempty"`
	NextPageToken string      `json:"nextPageToken,omitempty" yaml:"next_page_token,omitempty"`
}

// ListLocationsResponse is one page of locations.
type ListLocationsResponse struct {
	Locations     []Location `json:"locations,omitempty"     yaml:"locations,omitempty"`
	NextPageToken string     `json:"nextPageToken,omitempty" yaml:"next_page_token,omitempty"`
}
