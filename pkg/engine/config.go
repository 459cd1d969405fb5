package engine

import (
	"math"

	"github.com/ondravit/VeloPath/pkg"
	"github.com/ondravit/VeloPath/pkg/costfunction"
	"github.com/ondravit/VeloPath/pkg/engine/routing"
	"github.com/ondravit/VeloPath/pkg/spatialindex"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	MERGE_TOLERANCE_KEY    = "graph.merge_tolerance_m"
	SENSITIVITY_KEY        = "routing.sensitivity"
	ALGORITHM_KEY          = "routing.algorithm"
	NEAREST_INDEX_KEY      = "routing.nearest_index"
	CACHE_SIZE_KEY         = "routing.cache_size"
	CONDITION_PROPERTY_KEY = "roads.condition_property"
	MULTIPLIER_TABLE_KEY   = "roads.multiplier_table"
)

type Config struct {
	MergeTolerance    float64 // meters
	Sensitivity       float64
	Algorithm         string
	NearestIndex      string
	CacheSize         int
	ConditionProperty string // geojson feature property holding the condition label
	MultiplierTable   string
}

func DefaultConfig() Config {
	return Config{
		MergeTolerance:    pkg.DEFAULT_MERGE_TOLERANCE_M,
		Sensitivity:       pkg.DEFAULT_SENSITIVITY,
		Algorithm:         routing.ASTAR,
		NearestIndex:      spatialindex.RTREE_INDEX,
		CacheSize:         4096,
		ConditionProperty: "stav_sil",
		MultiplierTable:   costfunction.DEFAULT_TABLE,
	}
}

// SetViperDefaults registers DefaultConfig values so keys missing from config.yaml still resolve.
func SetViperDefaults() {
	def := DefaultConfig()
	viper.SetDefault(MERGE_TOLERANCE_KEY, def.MergeTolerance)
	viper.SetDefault(SENSITIVITY_KEY, def.Sensitivity)
	viper.SetDefault(ALGORITHM_KEY, def.Algorithm)
	viper.SetDefault(NEAREST_INDEX_KEY, def.NearestIndex)
	viper.SetDefault(CACHE_SIZE_KEY, def.CacheSize)
	viper.SetDefault(CONDITION_PROPERTY_KEY, def.ConditionProperty)
	viper.SetDefault(MULTIPLIER_TABLE_KEY, def.MultiplierTable)
}

func ConfigFromViper() Config {
	SetViperDefaults()
	return Config{
		MergeTolerance:    viper.GetFloat64(MERGE_TOLERANCE_KEY),
		Sensitivity:       viper.GetFloat64(SENSITIVITY_KEY),
		Algorithm:         viper.GetString(ALGORITHM_KEY),
		NearestIndex:      viper.GetString(NEAREST_INDEX_KEY),
		CacheSize:         viper.GetInt(CACHE_SIZE_KEY),
		ConditionProperty: viper.GetString(CONDITION_PROPERTY_KEY),
		MultiplierTable:   viper.GetString(MULTIPLIER_TABLE_KEY),
	}
}

func (c Config) Multiplier() costfunction.ConditionMultiplier {
	return costfunction.MultiplierByName(c.MultiplierTable)
}

// Sanitize. replaces values the routing core cannot work with by their defaults.
// sensitivity must be > 1, otherwise the quality balance is inert or edge weights turn negative.
func (c Config) Sanitize(log *zap.Logger) Config {
	if math.IsNaN(c.Sensitivity) || c.Sensitivity <= 1 {
		log.Warn("invalid routing sensitivity, using default",
			zap.Float64("sensitivity", c.Sensitivity),
			zap.Float64("default", pkg.DEFAULT_SENSITIVITY),
		)
		c.Sensitivity = pkg.DEFAULT_SENSITIVITY
	}
	return c
}
