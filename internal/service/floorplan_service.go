package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"go.uber.org/zap"

	"github.com/Ziming-L/wwu-course-navigator/internal/dto"
	"github.com/Ziming-L/wwu-course-navigator/internal/models"
	"github.com/Ziming-L/wwu-course-navigator/pkg/storage"
)

// FloorplanService resolves schedule occurrences against the building
// directory and stages the matching floorplan asset inside the tab's
// session directory.
type FloorplanService struct {
	buildingMapPath string
	floorplanDir    string
	storage         *storage.TabStorage
	metrics         *MetricsService
	logger          *zap.Logger

	mu       sync.Mutex
	loaded   bool
	building dto.BuildingMap
	names    []string
}

// NewFloorplanService instantiates FloorplanService.
func NewFloorplanService(buildingMapPath, floorplanDir string, store *storage.TabStorage, metrics *MetricsService, logger *zap.Logger) *FloorplanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FloorplanService{
		buildingMapPath: buildingMapPath,
		floorplanDir:    floorplanDir,
		storage:         store,
		metrics:         metrics,
		logger:          logger,
	}
}

// Annotate walks every occurrence, resolving its building against the
// directory. A resolved occurrence gets its floorplan filename and
// coordinates; online occurrences and unmatched buildings are left bare.
func (s *FloorplanService) Annotate(tabID string, sched models.Schedule) {
	directory, names, err := s.load()
	if err != nil {
		s.logger.Warn("building directory unavailable, skipping floorplan annotation", zap.Error(err))
		return
	}

	type resolved struct {
		mapDocument string
		lat, lon    *float64
	}
	cache := map[string]resolved{}

	for day := range sched {
		for i := range sched[day] {
			occ := &sched[day][i]
			if occ.Online() {
				continue
			}

			matchName := occ.Building
			if _, ok := directory[matchName]; !ok {
				matchName = bestMatchBuildingName(occ.Building, names)
				if matchName != occ.Building {
					s.logger.Info("building name corrected",
						zap.String("raw", occ.Building), zap.String("matched", matchName))
				}
			}

			key := fmt.Sprintf("%s_%s", matchName, occ.Room)
			if hit, ok := cache[key]; ok {
				occ.MapDocument = hit.mapDocument
				occ.Lat = hit.lat
				occ.Lon = hit.lon
				continue
			}

			info := directory[matchName]
			result := resolved{lat: info.Lat, lon: info.Lon}
			if info.FileName != "" {
				if name, err := s.stageFloorplan(tabID, info.FileName, occ.Room); err == nil {
					result.mapDocument = name
				} else {
					s.logger.Warn("floorplan staging failed",
						zap.String("building", matchName), zap.Error(err))
				}
			}

			s.metrics.RecordFloorplanResolution(result.mapDocument != "")
			cache[key] = result
			occ.MapDocument = result.mapDocument
			occ.Lat = result.lat
			occ.Lon = result.lon
		}
	}
}

// stageFloorplan copies the building's floorplan asset into the tab's
// floorplans directory under "<ABBR>_<room>.pdf" and returns that name.
func (s *FloorplanService) stageFloorplan(tabID, fileName, room string) (string, error) {
	src, err := os.Open(filepath.Join(s.floorplanDir, fileName))
	if err != nil {
		return "", fmt.Errorf("open floorplan asset: %w", err)
	}
	defer src.Close() //nolint:errcheck

	abbr := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	target := fmt.Sprintf("%s_%s.pdf", abbr, room)
	if _, err := s.storage.SaveStream(tabID, filepath.Join("floorplans", target), src); err != nil {
		return "", err
	}
	return target, nil
}

func (s *FloorplanService) load() (dto.BuildingMap, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		raw, err := os.ReadFile(s.buildingMapPath)
		if err != nil {
			return nil, nil, fmt.Errorf("read building map: %w", err)
		}
		var directory dto.BuildingMap
		if err := json.Unmarshal(raw, &directory); err != nil {
			return nil, nil, fmt.Errorf("decode building map: %w", err)
		}

		names := make([]string, 0, len(directory))
		for name := range directory {
			names = append(names, name)
		}

		s.building = directory
		s.names = names
		s.loaded = true
	}

	return s.building, s.names, nil
}

// bestMatchBuildingName finds the closest official building name for a raw
// one, falling back to the raw name when nothing comes close.
func bestMatchBuildingName(raw string, names []string) string {
	ranks := fuzzy.RankFindNormalizedFold(strings.TrimSpace(raw), names)
	if len(ranks) == 0 {
		return raw
	}

	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance {
			best = rank
		}
	}
	return best.Target
}
