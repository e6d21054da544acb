package db

type Student struct {
	ID         int64
	RollNumber string
	Name       string
}

type Platform struct {
	Name              string
	DisplayName       string
	BaseUrl           string
	ProfileUrlPattern string
	Active            int64
}

type Profile struct {
	StudentID    int64
	Platform     string
	Username     string
	ProfileUrl   string
	SyncStatus   string
	SyncError    string
	LastSyncedAt int64
}

type CachedStatistic struct {
	StudentID int64
	Platform  string
	Record    string
	FetchedAt int64
}

type BatchCachedStatistic struct {
	BatchID   string
	StudentID int64
	Platform  string
	Record    string
	FetchedAt int64
}

type ScrapeFailure struct {
	Platform        string
	Username        string
	FailureCount    int64
	LastError       string
	LastAttemptedAt int64
}
