package domain

// OrganizationalUnit is one container accounts can be picked from.
type OrganizationalUnit struct {
	DN   string
	Name string
}

// Account is a directory user account eligible for a logonHours update.
type Account struct {
	DN             string
	SAMAccountName string
	DisplayName    string
}

// ApplyResult is the outcome of writing one account's logonHours value.
// Applying to many accounts is best effort: one result per account, a
// failure never aborts the rest of the batch.
type ApplyResult struct {
	AccountDN string
	Err       error
}
