package typedconfig

import (
	"github.com/keboola/go-client/pkg/keboola"
)

// Family groups providers which share one typed configuration shape.
type Family string

const (
	FamilySnowflake Family = "snowflake"
	FamilyBigQuery  Family = "bigquery"
	FamilySQL       Family = "sql"
	FamilyAthena    Family = "athena"
	FamilyGeneric   Family = "generic"
)

const (
	ProviderSnowflake  = keboola.ComponentID("keboola.ex-db-snowflake")
	ProviderBigQuery   = keboola.ComponentID("keboola.ex-google-bigquery-v2")
	ProviderMySQL      = keboola.ComponentID("keboola.ex-db-mysql")
	ProviderPostgreSQL = keboola.ComponentID("keboola.ex-db-pgsql")
	ProviderMSSQL      = keboola.ComponentID("keboola.ex-db-mssql")
	ProviderRedshift   = keboola.ComponentID("keboola.ex-db-redshift")
	ProviderAthena     = keboola.ComponentID("keboola.ex-aws-athena")
)

// families maps each known provider to its typed configuration shape.
// A new provider needs an entry here and, if its shape differs, a new Family.
var families = map[keboola.ComponentID]Family{ // nolint: gochecknoglobals
	ProviderSnowflake:  FamilySnowflake,
	ProviderBigQuery:   FamilyBigQuery,
	ProviderMySQL:      FamilySQL,
	ProviderPostgreSQL: FamilySQL,
	ProviderMSSQL:      FamilySQL,
	ProviderRedshift:   FamilySQL,
	ProviderAthena:     FamilyAthena,
}

// FamilyOf returns the family of the provider, unknown providers use the generic family.
func FamilyOf(provider keboola.ComponentID) Family {
	if f, found := families[provider]; found {
		return f
	}
	return FamilyGeneric
}
