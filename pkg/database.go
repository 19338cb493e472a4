package pid

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx"
)

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

type pidParameterizationEntry struct {
	Flavor string  `db:"Flavor"`
	Trck   float64 `db:"TrckFraction"`
	Cscd   float64 `db:"CscdFraction"`
}

// GetPIDTableFromDB loads the scalar per-flavour PID fractions valid for
// the given run number.
func GetPIDTableFromDB(db *sqlx.DB, runNumber int) (PIDTable, error) {
	query := "SELECT Flavor, TrckFraction, CscdFraction FROM PIDParameterization WHERE MinRun <= %d and MaxRun >= %d"
	query = fmt.Sprintf(query, runNumber, runNumber)

	if configuration.Verbosity > 0 {
		logger.Info("Reading PID parameterization from database", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s", query)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(query)
	if err != nil {
		return PIDTable{}, fmt.Errorf("error querying database: %w", err)
	}

	table := PIDTable{
		Weights: make(map[Flavor]ChannelWeights),
		Params: Params{
			"pid_source": "database",
			"run_number": runNumber,
		},
	}
	for rows.Next() {
		entry := pidParameterizationEntry{}
		if err := rows.StructScan(&entry); err != nil {
			return PIDTable{}, fmt.Errorf("error scanning DB row: %w", err)
		}
		flav, err := ParseFlavor(entry.Flavor)
		if err != nil {
			return PIDTable{}, fmt.Errorf("error reading PID parameterization: %w", err)
		}
		table.Weights[flav] = ChannelWeights{
			Trck: ScalarWeight(entry.Trck),
			Cscd: ScalarWeight(entry.Cscd),
		}
	}
	if err := table.Validate(); err != nil {
		return PIDTable{}, err
	}
	return table, nil
}
