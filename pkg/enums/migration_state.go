package enums

// MigrationState tracks the guest-to-account cart transfer lifecycle.
type MigrationState string

const (
	MigrationStateNotMigrated MigrationState = "not_migrated"
	MigrationStateMigrating   MigrationState = "migrating"
	MigrationStateMigrated    MigrationState = "migrated"
	MigrationStateFailed      MigrationState = "failed"
)

// String implements fmt.Stringer.
func (m MigrationState) String() string {
	return string(m)
}

// Terminal reports whether no further migration attempts should happen.
func (m MigrationState) Terminal() bool {
	return m == MigrationStateMigrated
}
