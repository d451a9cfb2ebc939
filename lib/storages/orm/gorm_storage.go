package orm

import (
	"log"
	"os"
	"reflect"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/pescuma/movedetect/lib/consoles"
	"github.com/pescuma/movedetect/lib/model"
	"github.com/pescuma/movedetect/lib/storages"
)

type gormStorage struct {
	mutex   sync.RWMutex
	db      *gorm.DB
	console consoles.Console

	config     *map[string]string
	sqlConfigs map[string]*sqlConfig
}

func NewGormStorage(d gorm.Dialector, console consoles.Console) (storages.Storage, error) {
	l := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(d, &gorm.Config{
		NamingStrategy: &NamingStrategy{},
		Logger:         l,
	})
	if err != nil {
		return nil, err
	}

	// sqlite only allows one writer, and each in memory connection is a new database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&sqlConfig{},
		&sqlAnalysis{},
		&sqlFile{}, &sqlFileLineHashes{},
		&sqlFileMove{},
	)
	if err != nil {
		return nil, err
	}

	return &gormStorage{
		db:         db,
		console:    console,
		sqlConfigs: map[string]*sqlConfig{},
	}, nil
}

func (s *gormStorage) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}

	return db.Close()
}

func createCache[T sqlTable](rows []T) map[string]T {
	return lo.Associate(rows, func(i T) (string, T) {
		return i.CacheKey(), i
	})
}

func (s *gormStorage) session() *gorm.DB {
	now := time.Now().Local()
	return s.db.Session(&gorm.Session{
		NowFunc:         func() time.Time { return now },
		CreateBatchSize: 300,
	})
}

func (s *gormStorage) LoadConfig() (*map[string]string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.config != nil {
		return s.config, nil
	}

	s.console.Debugf("Loading config...\n")

	var sqlConfigs []*sqlConfig
	err := s.db.Find(&sqlConfigs).Error
	if err != nil {
		return nil, err
	}

	s.sqlConfigs = createCache(sqlConfigs)

	result := configFromRows(sqlConfigs)
	s.config = &result
	return &result, nil
}

func (s *gormStorage) WriteConfig() error {
	if s.config == nil {
		return nil
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	changed, removed := configChanges(&s.sqlConfigs, *s.config)

	if len(changed) > 0 {
		err := s.session().Clauses(clause.OnConflict{UpdateAll: true}).Create(&changed).Error
		if err != nil {
			return errors.Wrap(err, "error writing config")
		}
	}

	if len(removed) > 0 {
		err := s.db.Where("name in ?", removed).Delete(&sqlConfig{}).Error
		if err != nil {
			return errors.Wrap(err, "error removing config")
		}

		for _, name := range removed {
			delete(s.sqlConfigs, name)
		}
	}

	return nil
}

func (s *gormStorage) LoadLastAnalysis(projectKey string, branch string) (*model.Analysis, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var sa sqlAnalysis
	err := s.db.
		Where("project_key = ? and branch = ? and pull_request = ''", projectKey, branch).
		Order("date desc, id desc").
		First(&sa).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return sa.ToModel(), nil
}

func (s *gormStorage) ListAnalyses(projectKey string) ([]*model.Analysis, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var sas []*sqlAnalysis
	err := s.db.Where("project_key = ?", projectKey).Order("date, id").Find(&sas).Error
	if err != nil {
		return nil, err
	}

	return lo.Map(sas, func(sa *sqlAnalysis, _ int) *model.Analysis { return sa.ToModel() }), nil
}

// WriteAnalysis creates or updates an analysis. New analyses get their ID set.
func (s *gormStorage) WriteAnalysis(analysis *model.Analysis) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sa := newSqlAnalysis(analysis)

	err := s.session().Save(sa).Error
	if err != nil {
		return err
	}

	analysis.ID = sa.ID
	return nil
}

func (s *gormStorage) LoadSnapshot(analysis *model.Analysis) (*model.Snapshot, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if analysis.ID == 0 {
		return nil, errors.New("analysis not stored")
	}

	var files []*sqlFile
	err := s.db.Where("analysis_id = ?", analysis.ID).Find(&files).Error
	if err != nil {
		return nil, err
	}

	result := model.NewSnapshot(analysis)
	for _, sf := range files {
		result.Files.Add(sf.ToModel())
	}

	return result, nil
}

// WriteSnapshot replaces all files of the snapshot analysis.
func (s *gormStorage) WriteSnapshot(snapshot *model.Snapshot) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	analysisID := snapshot.Analysis.ID
	if analysisID == 0 {
		return errors.New("analysis not stored")
	}

	files := snapshot.Files.List()

	sqlFiles := lo.Map(files, func(f *model.DbFile, _ int) *sqlFile { return newSqlFile(analysisID, f) })
	sqlHashes := lo.FilterMap(files, func(f *model.DbFile, _ int) (*sqlFileLineHashes, bool) {
		return newSqlFileLineHashes(analysisID, f), f.HasContent()
	})

	return s.session().Transaction(func(tx *gorm.DB) error {
		err := tx.Where("analysis_id = ?", analysisID).Delete(&sqlFile{}).Error
		if err != nil {
			return err
		}

		err = tx.Where("analysis_id = ?", analysisID).Delete(&sqlFileLineHashes{}).Error
		if err != nil {
			return err
		}

		if len(sqlFiles) > 0 {
			err = tx.Create(&sqlFiles).Error
			if err != nil {
				return errors.Wrap(err, "error writing files")
			}
		}

		if len(sqlHashes) > 0 {
			err = tx.Create(&sqlHashes).Error
			if err != nil {
				return errors.Wrap(err, "error writing line hashes")
			}
		}

		return nil
	})
}

func (s *gormStorage) LoadLineHashes(analysisID model.ID, uuid model.UUID) ([]string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var sh sqlFileLineHashes
	err := s.db.Where("analysis_id = ? and uuid = ?", analysisID, uuid).Take(&sh).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return decodeLineHashes(sh.Hashes, true), nil
}

func (s *gormStorage) LoadMoves(analysis *model.Analysis) ([]*storages.FileMove, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var sms []*sqlFileMove
	err := s.db.Where("analysis_id = ?", analysis.ID).Order("to_key").Find(&sms).Error
	if err != nil {
		return nil, err
	}

	return lo.Map(sms, func(sm *sqlFileMove, _ int) *storages.FileMove { return sm.ToStorage() }), nil
}

// WriteMoves replaces the moves of an analysis.
func (s *gormStorage) WriteMoves(analysis *model.Analysis, moves []*model.Move) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if analysis.ID == 0 {
		return errors.New("analysis not stored")
	}

	sms := lo.Map(moves, func(m *model.Move, _ int) *sqlFileMove { return newSqlFileMove(analysis.ID, m) })

	return s.session().Transaction(func(tx *gorm.DB) error {
		err := tx.Where("analysis_id = ?", analysis.ID).Delete(&sqlFileMove{}).Error
		if err != nil {
			return err
		}

		if len(sms) == 0 {
			return nil
		}

		return tx.Create(&sms).Error
	})
}

func prepareChange[T sqlTable](byID *map[string]T, n T) bool {
	o, ok := (*byID)[n.CacheKey()]
	if ok {
		ro := reflect.Indirect(reflect.ValueOf(o))
		rn := reflect.Indirect(reflect.ValueOf(n))

		rn.FieldByName("CreatedAt").Set(ro.FieldByName("CreatedAt"))
		rn.FieldByName("UpdatedAt").Set(ro.FieldByName("UpdatedAt"))
	}

	if reflect.DeepEqual(n, o) {
		return false
	} else {
		(*byID)[n.CacheKey()] = n
		return true
	}
}
