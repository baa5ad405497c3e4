package model

// TableCounts holds the row count of each catalog table.
type TableCounts struct {
	Users    int64 `json:"users_count"`
	Products int64 `json:"products_count"`
}
