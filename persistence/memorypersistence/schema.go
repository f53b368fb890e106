package memorypersistence

import "github.com/hashicorp/go-memdb"

const (
	executionTable = "execution"
	variableTable  = "variable"
	jobTable       = "job"
	incidentTable  = "incident"

	idIndex       = "id"
	instanceIndex = "instance"
	jobIndex      = "job"
)

// schema is the go-memdb schema for process state.
//
// Every table stores pointers to the persistence record types. Stored records
// are never modified in place.
var schema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		executionTable: {
			Name: executionTable,
			Indexes: map[string]*memdb.IndexSchema{
				idIndex: {
					Name:    idIndex,
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
				instanceIndex: {
					Name:         instanceIndex,
					AllowMissing: true,
					Indexer:      &memdb.StringFieldIndex{Field: "ProcessInstanceID"},
				},
			},
		},
		variableTable: {
			Name: variableTable,
			Indexes: map[string]*memdb.IndexSchema{
				idIndex: {
					Name:   idIndex,
					Unique: true,
					Indexer: &memdb.CompoundIndex{
						Indexes: []memdb.Indexer{
							&memdb.StringFieldIndex{Field: "ExecutionID"},
							&memdb.StringFieldIndex{Field: "Name"},
						},
					},
				},
				instanceIndex: {
					Name:         instanceIndex,
					AllowMissing: true,
					Indexer:      &memdb.StringFieldIndex{Field: "ProcessInstanceID"},
				},
			},
		},
		jobTable: {
			Name: jobTable,
			Indexes: map[string]*memdb.IndexSchema{
				idIndex: {
					Name:    idIndex,
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
				instanceIndex: {
					Name:         instanceIndex,
					AllowMissing: true,
					Indexer:      &memdb.StringFieldIndex{Field: "ProcessInstanceID"},
				},
			},
		},
		incidentTable: {
			Name: incidentTable,
			Indexes: map[string]*memdb.IndexSchema{
				idIndex: {
					Name:    idIndex,
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
				instanceIndex: {
					Name:         instanceIndex,
					AllowMissing: true,
					Indexer:      &memdb.StringFieldIndex{Field: "ProcessInstanceID"},
				},
				jobIndex: {
					Name:         jobIndex,
					AllowMissing: true,
					Indexer:      &memdb.StringFieldIndex{Field: "JobID"},
				},
			},
		},
	},
}
