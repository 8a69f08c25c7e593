package store

// Contact is one entry in the assistant's phone book.
type Contact struct {
	ID        int32
	UID       string
	Name      string
	Phone     string
	CreatedTs int64
}

type FindContact struct {
	ID   *int32
	UID  *string
	Name *string // exact match; fuzzy lookup lives on Store
}

type DeleteContact struct {
	ID int32
}
