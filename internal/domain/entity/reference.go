package entity

// Reference data managed by admins and consumed read-only by clients.

type SubjectTag struct {
	ID   string
	Name string
}

type Timezone struct {
	ID        string
	Name      string // e.g. "Asia/Dhaka"
	UTCOffset string // e.g. "+06:00"
}

type Language struct {
	ID         string
	Name       string
	NativeName string
}
