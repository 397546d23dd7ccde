// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package actions

func producer(system, node, machine string) string {
	return "sgs.nemo-actions_" + system + "_" + node + "_" + machine
}
