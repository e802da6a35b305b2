package main

import (
	log "github.com/sirupsen/logrus"

	"orderservice/pkg/order/infrastructure/mysql"
)

func runMigrate(cnf *config, down int, logger log.FieldLogger) error {
	db, err := mysql.Open(cnf.database())
	if err != nil {
		return err
	}
	defer db.Close()

	if down > 0 {
		if err := mysql.Rollback(db, down); err != nil {
			return err
		}
		logger.WithField("steps", down).Info("migrations rolled back")
		return nil
	}
	if err := mysql.Migrate(db); err != nil {
		return err
	}
	logger.Info("migrations applied")
	return nil
}
