package employee

// DirectoryEntryResponse is the wire shape of a directory row. Timestamps are
// internal bookkeeping and stay off the wire.
type DirectoryEntryResponse struct {
	ID                string `json:"id"`
	Identifier        string `json:"identifier"`
	FullName          string `json:"full_name"`
	Occupation        string `json:"occupation"`
	Rank              string `json:"rank,omitempty"`
	Grade             string `json:"grade,omitempty"`
	Classification    string `json:"classification,omitempty"`
	BankName          string `json:"bank_name,omitempty"`
	AccountNumber     string `json:"account_number,omitempty"`
	AccountHolderName string `json:"account_holder_name,omitempty"`
	Status            string `json:"status"`
}

func ToDirectoryEntryResponse(e DirectoryEntry) DirectoryEntryResponse {
	return DirectoryEntryResponse{
		ID:                e.ID,
		Identifier:        e.Identifier,
		FullName:          e.FullName,
		Occupation:        e.Occupation,
		Rank:              e.Rank,
		Grade:             e.Grade,
		Classification:    string(e.Classification),
		BankName:          e.BankName,
		AccountNumber:     e.AccountNumber,
		AccountHolderName: e.AccountHolderName,
		Status:            string(e.Status),
	}
}
