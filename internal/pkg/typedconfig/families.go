package typedconfig

// Snowflake configuration, eg. "keboola.ex-db-snowflake".
type Snowflake struct {
	base
	Account   string `mapstructure:"account"`
	User      string `mapstructure:"user"`
	Warehouse string `mapstructure:"warehouseName"`
	Role      string `mapstructure:"roleName"`
	Database  string `mapstructure:"databaseName"`
	Schema    string `mapstructure:"schemaName"`
	Table     string `mapstructure:"tableName"`
	Query     string `mapstructure:"query"`
}

// BigQuery configuration, a project plays the role of a database and a dataset of a schema.
type BigQuery struct {
	base
	ProjectID    string `mapstructure:"projectId"`
	DatasetID    string `mapstructure:"datasetId"`
	TableID      string `mapstructure:"tableId"`
	Location     string `mapstructure:"location"`
	SQL          string `mapstructure:"sql"`
	UseLegacySQL *bool  `mapstructure:"useLegacySql"`
}

// SQLDatabase configuration shared by the classic relational databases.
type SQLDatabase struct {
	base
	Host     string `mapstructure:"host"`
	Port     *int   `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Database string `mapstructure:"database"`
	Schema   string `mapstructure:"schema"`
	Table    string `mapstructure:"table"`
	Query    string `mapstructure:"query"`
}

// Athena configuration, a workgroup plays the role of a warehouse.
type Athena struct {
	base
	Region         string `mapstructure:"region"`
	Catalog        string `mapstructure:"catalog"`
	DatabaseName   string `mapstructure:"databaseName"`
	WorkGroup      string `mapstructure:"workGroup"`
	OutputLocation string `mapstructure:"outputLocation"`
	QueryString    string `mapstructure:"queryString"`
}

// Generic configuration of an unknown provider, attributes are read directly from the raw values.
type Generic struct {
	base
}

func (c *Snowflake) Attribute(name string) (any, bool) {
	return structAttribute(c, name)
}

func (c *BigQuery) Attribute(name string) (any, bool) {
	return structAttribute(c, name)
}

func (c *SQLDatabase) Attribute(name string) (any, bool) {
	return structAttribute(c, name)
}

func (c *Athena) Attribute(name string) (any, bool) {
	return structAttribute(c, name)
}

func (c *Generic) Attribute(name string) (any, bool) {
	value, found := c.values.Get(name)
	if !found || isEmpty(value) {
		return nil, false
	}
	return value, true
}
