package engine

import "errors"

var errDetectionProbabilityRange = errors.New("detection probability must be in [0,1]")
var errDuplicateName = errors.New("duplicate radar/sensor name")
