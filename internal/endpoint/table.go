package endpoint

import (
	"net/http"

	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
)

// ID identifies one remote operation.
type ID int

const (
	AppsGet ID = iota
	AppsCreate
	AppsPatch
	AppsRepair
	OperationsList
	OperationsGet
	LocationsList
	LocationsGet
	ServicesList
	ServicesGet
	ServicesPatch
	ServicesDelete
	VersionsList
	VersionsGet
	VersionsCreate
	VersionsPatch
	VersionsDelete
	InstancesList
	InstancesGet
	InstancesDelete
	InstancesDebug

	numEndpoints
)

// String returns the dotted operation name, e.g. apps.services.versions.get.
func (id ID) String() string {
	if d := Lookup(id); d != nil {
		return d.Name
	}

	return "unknown"
}

// Descriptor is the static description of one remote operation. Descriptors
// live in a package-level table and must not be modified.
type Descriptor struct {
	ID       ID
	Name     string
	Method   string
	Template string
	// PathParams lists the template placeholders in declared order.
	PathParams []string
	// QueryParams lists the operation-specific query names. The common
	// names fields, quotaUser and key are accepted by every operation.
	QueryParams    []string
	RequestSchema  appengine.Schema
	ResponseSchema appengine.Schema
}

// Query parameters accepted by every operation.
const (
	ParamFields    = "fields"
	ParamQuotaUser = "quotaUser"
	ParamKey       = "key"
)

var commonQueryParams = []string{ParamFields, ParamQuotaUser, ParamKey}

// Accepts reports whether name is a query parameter of the operation.
func (d *Descriptor) Accepts(name string) bool {
	for _, param := range commonQueryParams {
		if param == name {
			return true
		}
	}

	for _, param := range d.QueryParams {
		if param == name {
			return true
		}
	}

	return false
}

const (
	appPath      = "v1/apps/{appsId}"
	servicePath  = appPath + "/services/{servicesId}"
	versionPath  = servicePath + "/versions/{versionsId}"
	instancePath = versionPath + "/instances/{instancesId}"
)

var (
	appParams      = []string{"appsId"}
	serviceParams  = []string{"appsId", "servicesId"}
	versionParams  = []string{"appsId", "servicesId", "versionsId"}
	instanceParams = []string{"appsId", "servicesId", "versionsId", "instancesId"}

	pagedFiltered = []string{"pageToken", "pageSize", "filter"}
	paged         = []string{"pageToken", "pageSize"}
)

var descriptors = [numEndpoints]Descriptor{
	AppsGet: {
		Name: "apps.get", Method: http.MethodGet, Template: appPath,
		PathParams: appParams, ResponseSchema: appengine.SchemaApplication,
	},
	AppsCreate: {
		Name: "apps.create", Method: http.MethodPost, Template: "v1/apps",
		RequestSchema: appengine.SchemaApplication, ResponseSchema: appengine.SchemaOperation,
	},
	AppsPatch: {
		Name: "apps.patch", Method: http.MethodPatch, Template: appPath,
		PathParams: appParams, QueryParams: []string{"updateMask"},
		RequestSchema: appengine.SchemaApplication, ResponseSchema: appengine.SchemaOperation,
	},
	AppsRepair: {
		Name: "apps.repair", Method: http.MethodPost, Template: appPath + ":repair",
		PathParams:    appParams,
		RequestSchema: appengine.SchemaRepairApplicationRequest, ResponseSchema: appengine.SchemaOperation,
	},
	OperationsList: {
		Name: "apps.operations.list", Method: http.MethodGet, Template: appPath + "/operations",
		PathParams: appParams, QueryParams: pagedFiltered,
		ResponseSchema: appengine.SchemaListOperationsResponse,
	},
	OperationsGet: {
		Name: "apps.operations.get", Method: http.MethodGet, Template: appPath + "/operations/{operationsId}",
		PathParams:     []string{"appsId", "operationsId"},
		ResponseSchema: appengine.SchemaOperation,
	},
	LocationsList: {
		Name: "apps.locations.list", Method: http.MethodGet, Template: appPath + "/locations",
		PathParams: appParams, QueryParams: pagedFiltered,
		ResponseSchema: appengine.SchemaListLocationsResponse,
	},
	LocationsGet: {
		Name: "apps.locations.get", Method: http.MethodGet, Template: appPath + "/locations/{locationsId}",
		PathParams:     []string{"appsId", "locationsId"},
		ResponseSchema: appengine.SchemaLocation,
	},
	ServicesList: {
		Name: "apps.services.list", Method: http.MethodGet, Template: appPath + "/services",
		PathParams: appParams, QueryParams: paged,
		ResponseSchema: appengine.SchemaListServicesResponse,
	},
	ServicesGet: {
		Name: "apps.services.get", Method: http.MethodGet, Template: servicePath,
		PathParams: serviceParams, ResponseSchema: appengine.SchemaService,
	},
	ServicesPatch: {
		Name: "apps.services.patch", Method: http.MethodPatch, Template: servicePath,
		PathParams: serviceParams, QueryParams: []string{"updateMask", "migrateTraffic"},
		RequestSchema: appengine.SchemaService, ResponseSchema: appengine.SchemaOperation,
	},
	ServicesDelete: {
		Name: "apps.services.delete", Method: http.MethodDelete, Template: servicePath,
		PathParams: serviceParams, ResponseSchema: appengine.SchemaOperation,
	},
	VersionsList: {
		Name: "apps.services.versions.list", Method: http.MethodGet, Template: servicePath + "/versions",
		PathParams: serviceParams, QueryParams: []string{"pageToken", "pageSize", "view"},
		ResponseSchema: appengine.SchemaListVersionsResponse,
	},
	VersionsGet: {
		Name: "apps.services.versions.get", Method: http.MethodGet, Template: versionPath,
		PathParams: versionParams, QueryParams: []string{"view"},
		ResponseSchema: appengine.SchemaVersion,
	},
	VersionsCreate: {
		Name: "apps.services.versions.create", Method: http.MethodPost, Template: servicePath + "/versions",
		PathParams:    serviceParams,
		RequestSchema: appengine.SchemaVersion, ResponseSchema: appengine.SchemaOperation,
	},
	VersionsPatch: {
		Name: "apps.services.versions.patch", Method: http.MethodPatch, Template: versionPath,
		PathParams: versionParams, QueryParams: []string{"updateMask"},
		RequestSchema: appengine.SchemaVersion, ResponseSchema: appengine.SchemaOperation,
	},
	VersionsDelete: {
		Name: "apps.services.versions.delete", Method: http.MethodDelete, Template: versionPath,
		PathParams: versionParams, ResponseSchema: appengine.SchemaOperation,
	},
	InstancesList: {
		Name: "apps.services.versions.instances.list", Method: http.MethodGet, Template: versionPath + "/instances",
		PathParams: versionParams, QueryParams: paged,
		ResponseSchema: appengine.SchemaListInstancesResponse,
	},
	InstancesGet: {
		Name: "apps.services.versions.instances.get", Method: http.MethodGet, Template: instancePath,
		PathParams: instanceParams, ResponseSchema: appengine.SchemaInstance,
	},
	InstancesDelete: {
		Name: "apps.services.versions.instances.delete", Method: http.MethodDelete, Template: instancePath,
		PathParams: instanceParams, ResponseSchema: appengine.SchemaOperation,
	},
	InstancesDebug: {
		Name: "apps.services.versions.instances.debug", Method: http.MethodPost, Template: instancePath + ":debug",
		PathParams:    instanceParams,
		RequestSchema: appengine.SchemaDebugInstanceRequest, ResponseSchema: appengine.SchemaOperation,
	},
}

var byName = func() map[string]*Descriptor {
	index := make(map[string]*Descriptor, len(descriptors))

	for id := range descriptors {
		descriptors[id].ID = ID(id)
		index[descriptors[id].Name] = &descriptors[id]
	}

	return index
}()

// Lookup returns the descriptor of id, or nil when id is out of range.
func Lookup(id ID) *Descriptor {
	if id < 0 || id >= numEndpoints {
		return nil
	}

	return &descriptors[id]
}

// ByName returns the descriptor with the given dotted operation name.
func ByName(name string) (*Descriptor, bool) {
	d, ok := byName[name]

	return d, ok
}

// All returns every descriptor in ID order.
func All() []*Descriptor {
	all := make([]*Descriptor, 0, len(descriptors))
	for id := range descriptors {
		all = append(all, &descriptors[id])
	}

	return all
}
