package services

import (
	"Shoebox/internal/config"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Janitor purges library records that have sat in the trash longer than
// the configured retention. Only one clean cycle runs at a time.
type Janitor struct {
	libraryService LibraryService
	configuration  *config.Configuration
	logService     LogService
	cleaning       bool
	mutex          sync.Mutex
	cron           *cron.Cron
}

func NewJanitorService(
	libraryService LibraryService,
	logService LogService,
	configuration *config.Configuration,
) *Janitor {
	return &Janitor{
		libraryService: libraryService,
		logService:     logService,
		configuration:  configuration,
		cron:           cron.New(),
	}
}

func (j *Janitor) ForceStartCleanCycle() error {
	j.mutex.Lock()
	if j.cleaning {
		j.mutex.Unlock()
		return errors.New("cleaning is in progress")
	}
	j.cleaning = true
	j.mutex.Unlock()

	go func() {
		defer func() {
			j.mutex.Lock()
			j.cleaning = false
			j.mutex.Unlock()
		}()
		j.startClean(true)
	}()

	return nil
}

func (j *Janitor) StartCleanCycle() {
	j.logService.Log.Debug("starting cleaning job")

	cronSchedule := j.configuration.Server.CleanConfig.Schedule
	_, err := j.cron.AddFunc(cronSchedule, func() {
		j.mutex.Lock()
		if j.cleaning {
			j.mutex.Unlock()
			return
		}
		j.cleaning = true
		j.mutex.Unlock()

		defer func() {
			j.mutex.Lock()
			j.cleaning = false
			j.mutex.Unlock()
		}()
		j.startClean(false)
	})

	if err != nil {
		j.logService.Log.WithFields(logrus.Fields{
			"job":   "clean",
			"error": err.Error(),
		}).Error("Failed to schedule cleaning job")
		return
	}
	j.cron.Start()
}

func (j *Janitor) StopClean() {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	j.cron.Stop()
	j.cleaning = false
	j.logService.Log.WithFields(logrus.Fields{
		"job":    "clean",
		"status": "stopped",
	}).Info("Janitor clean stopped")
}

func (j *Janitor) IsCleaning() bool {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	return j.cleaning
}

func (j *Janitor) startClean(forced bool) {
	retention := time.Duration(j.configuration.Server.CleanConfig.RetentionDays) * 24 * time.Hour
	cutoff := time.Now().Add(-retention)

	records, err := j.libraryService.GetTrashedBefore(cutoff)
	if err != nil {
		j.logService.Log.WithFields(logrus.Fields{
			"job":    "clean",
			"status": "error",
			"error":  err.Error(),
		}).Error("Failed to find trashed snapshots")
		return
	}
	if len(records) == 0 {
		return
	}

	logFields := logrus.Fields{
		"job":    "clean",
		"status": "start",
		"count":  len(records),
	}
	if forced {
		logFields["status"] = "forced"
	} else {
		logFields["cron"] = j.configuration.Server.CleanConfig.Schedule
	}
	j.logService.Log.WithFields(logFields).Info("Purging trashed snapshots")

	var purgedCount int
	for i := range records {
		if err := j.libraryService.Purge(&records[i]); err != nil {
			j.logService.Log.WithFields(logrus.Fields{
				"job":       "clean",
				"status":    "error",
				"error":     err.Error(),
				"file_name": records[i].FileName,
			}).Error("Failed to purge snapshot")
			continue
		}
		purgedCount++
	}
	if purgedCount > 0 {
		j.logService.Log.WithFields(logrus.Fields{
			"job":    "clean",
			"status": "success",
			"count":  purgedCount,
		}).Info("cleaning job finished")
	}
}
