package trigdet

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
)

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

// DetAddress identifies one acquisition channel in the electronics.
type DetAddress struct {
	Crate uint16
	Slot  uint16
	Ch    uint16
}

// DetChannel is the logical channel a hit belongs to: the plane selecting
// the channel kind and the 1-based bar number within the plane.
type DetChannel struct {
	Plane int
	Bar   int
}

// DetectorMap assigns plane and bar numbers to acquisition addresses.
type DetectorMap map[DetAddress]DetChannel

type detMapEntry struct {
	Crate int `db:"Crate"`
	Slot  int `db:"Slot"`
	Ch    int `db:"Ch"`
	Plane int `db:"Plane"`
	Bar   int `db:"Bar"`
}

// LoadDetectorMap reads the channel mapping valid for a run from the run
// database. The detector key is the engine ID, e.g. "HTRIG".
func LoadDetectorMap(db *sqlx.DB, detector string, runNumber int) (DetectorMap, error) {
	query := `SELECT Crate, Slot, Ch, Plane, Bar FROM ChannelMapping
		WHERE Detector = ? AND MinRun <= ? AND MaxRun >= ? ORDER BY Plane, Bar`

	rows, err := db.Queryx(query, detector, runNumber, runNumber)
	if err != nil {
		return nil, fmt.Errorf("error querying database: %w", err)
	}
	defer rows.Close()

	detMap := make(DetectorMap)
	for rows.Next() {
		entry := detMapEntry{}
		if err := rows.StructScan(&entry); err != nil {
			return nil, fmt.Errorf("error scanning DB row: %w", err)
		}
		addr := DetAddress{Crate: uint16(entry.Crate), Slot: uint16(entry.Slot), Ch: uint16(entry.Ch)}
		detMap[addr] = DetChannel{Plane: entry.Plane, Bar: entry.Bar}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading DB rows: %w", err)
	}

	message := fmt.Sprintf("Channel mapping for %s read from DB: %d channels", detector, len(detMap))
	logger.Info(message, "database")
	return detMap, nil
}
