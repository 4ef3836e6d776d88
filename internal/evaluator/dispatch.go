// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package evaluator

import (
	"crypto/md5"
	"encoding/binary"
	"math"

	"github.com/MKhiriev/featbit-go-sdk/models"
)

const exptDispatchKeyPrefix = "expt"

// dispatch picks the rollout variation the user falls into and whether the
// evaluation is sent to experiments.
func dispatch(flag models.FeatureFlag, user models.User, dispatchKey string, variations []models.RolloutVariation, includedInExpt bool) (models.RolloutVariation, bool, bool) {
	if dispatchKey == "" {
		dispatchKey = models.PropertyKeyID
	}
	value, _ := user.ValueOf(dispatchKey)
	key := flag.Key + value

	for _, rv := range variations {
		if isInRollout(key, rv.Rollout) {
			return rv, sendToExperiment(key, rv, flag.ExptIncludeAllTargets, includedInExpt), true
		}
	}
	return models.RolloutVariation{}, false, false
}

func sendToExperiment(key string, rv models.RolloutVariation, includeAll, includedInExpt bool) bool {
	if includeAll {
		return true
	}
	if !includedInExpt {
		return false
	}

	dispatchRollout := rv.DispatchRollout()
	if rv.ExptRollout == 0 || dispatchRollout == 0 {
		return false
	}

	upper := min(rv.ExptRollout/dispatchRollout, 1)
	return isInRollout(exptDispatchKeyPrefix+key, [2]float64{0, upper})
}

// isInRollout reports whether key falls into [rollout[0], rollout[1]).
// The full [0, 1] range always matches.
func isInRollout(key string, rollout [2]float64) bool {
	lo, hi := rollout[0], rollout[1]
	if lo == 0 && hi == 1 {
		return true
	}
	p := percentage(key)
	return p >= lo && p < hi
}

// percentage maps key to [0, 1] the way every FeatBit SDK does, so a user
// lands in the same bucket regardless of the SDK language.
func percentage(key string) float64 {
	sum := md5.Sum([]byte(key))
	n := int32(binary.LittleEndian.Uint32(sum[:4]))
	return math.Abs(float64(n) / math.MinInt32)
}
