// SPDX-License-Identifier: MIT

// Package radial partitions participants of a yes/no questionnaire into K
// balanced deliberation groups that are contiguous wedges of the opinion
// plane.
//
// The pipeline runs in stages, each in its own subpackage:
//
//	ballot/    read the response CSV, encode yes/no/missing, write assignments
//	matrix/    dense matrices, column statistics, Jacobi eigen-decomposition
//	pca/       standardize and project onto the top principal components
//	sector/    balanced radial partition around the centroid and its boundaries
//	render/    PNG chart with group hulls, boundary rays and centroid
//	store/     SQLite history of runs (assignments and boundaries)
//	metrics/   Prometheus recorder with textfile and Pushgateway export
//	config/    YAML configuration with RADIAL_* environment overrides
//	logging/   zap-backed structured logger
//	pipeline/  wires the stages together for one input
//
// The radial command (cmd/radial) exposes run, runs, show and init-config.
//
// Quick start:
//
//	ps := []sector.Participant{{ID: "a", X: 1, Y: 0}, {ID: "b", X: -1, Y: 0}}
//	res, err := sector.Partition(ps, 2, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(res.Assignment["a"], res.Assignment["b"])
package radial
