package conformed

import (
	"sync"

	"github.com/keboola/go-client/pkg/keboola"

	. "github.com/keboola/kbc-conform/internal/pkg/typedconfig"
)

const (
	PropertyQuery     = "query"
	PropertyDatabase  = "database"
	PropertySchema    = "schema"
	PropertyTable     = "table"
	PropertyWarehouse = "warehouse"
	PropertyRole      = "role"
	PropertyHost      = "host"
	PropertyLocation  = "location"
)

// nolint: gochecknoglobals
var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry with the built-in properties.
// The registry is populated on the first call and then frozen.
func Default() *Registry {
	defaultOnce.Do(func() {
		r := NewRegistry()
		r.MustRegister(BuiltIn()...)
		r.Freeze()
		defaultRegistry = r
	})
	return defaultRegistry
}

// BuiltIn returns definitions of the built-in properties.
func BuiltIn() []Property {
	sqlProviders := []keboola.ComponentID{ProviderMySQL, ProviderPostgreSQL, ProviderMSSQL, ProviderRedshift}
	return []Property{
		{
			Name:        PropertyQuery,
			Description: "SQL query executed by the extractor.",
			Mappings: append(
				[]Mapping{{ProviderSnowflake, "query"}, {ProviderBigQuery, "sql"}, {ProviderAthena, "queryString"}},
				mapAll(sqlProviders, "query")...,
			),
		},
		{
			Name:        PropertyDatabase,
			Description: "Database, project or catalog.",
			Mappings: append(
				[]Mapping{{ProviderSnowflake, "databaseName"}, {ProviderBigQuery, "projectId"}, {ProviderAthena, "catalog"}},
				mapAll(sqlProviders, "database")...,
			),
		},
		{
			Name:        PropertySchema,
			Description: "Schema or dataset.",
			Mappings: append(
				[]Mapping{{ProviderSnowflake, "schemaName"}, {ProviderBigQuery, "datasetId"}, {ProviderAthena, "databaseName"}},
				mapAll([]keboola.ComponentID{ProviderPostgreSQL, ProviderMSSQL, ProviderRedshift}, "schema")...,
			),
		},
		{
			Name:        PropertyTable,
			Description: "Source table.",
			Mappings: append(
				[]Mapping{{ProviderSnowflake, "tableName"}, {ProviderBigQuery, "tableId"}},
				mapAll(sqlProviders, "table")...,
			),
		},
		{
			Name:        PropertyWarehouse,
			Description: "Compute warehouse or workgroup.",
			Mappings:    []Mapping{{ProviderSnowflake, "warehouseName"}, {ProviderAthena, "workGroup"}},
		},
		{
			Name:        PropertyRole,
			Description: "Role used for the connection.",
			Mappings:    []Mapping{{ProviderSnowflake, "roleName"}},
		},
		{
			Name:        PropertyHost,
			Description: "Host or account of the source.",
			Mappings: append(
				[]Mapping{{ProviderSnowflake, "account"}},
				mapAll(sqlProviders, "host")...,
			),
		},
		{
			Name:        PropertyLocation,
			Description: "Region or location of the data.",
			Mappings:    []Mapping{{ProviderBigQuery, "location"}, {ProviderAthena, "region"}},
		},
	}
}

func mapAll(providers []keboola.ComponentID, attribute string) []Mapping {
	out := make([]Mapping, 0, len(providers))
	for _, p := range providers {
		out = append(out, Mapping{Provider: p, Attribute: attribute})
	}
	return out
}
