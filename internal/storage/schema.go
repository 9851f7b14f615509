// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines owners, pets, and visits with cascading foreign keys.
package storage

// initSchema creates the tables if they do not exist yet.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS owners (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		phone TEXT,
		address TEXT
	);

	CREATE TABLE IF NOT EXISTS pets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		species TEXT,
		breed TEXT,
		age INTEGER CHECK (age >= 0),
		owner_id INTEGER NOT NULL,
		FOREIGN KEY (owner_id) REFERENCES owners(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS visits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		reason TEXT,
		diagnosis TEXT,
		pet_id INTEGER NOT NULL,
		FOREIGN KEY (pet_id) REFERENCES pets(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_pets_owner ON pets(owner_id);
	CREATE INDEX IF NOT EXISTS idx_visits_pet_date ON visits(pet_id, date DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
