package core

import (
	"fmt"
	"strings"
)

// Operation identifies one of the user-triggerable backend actions.
type Operation string

const (
	OperationAnalyze   Operation = "analyze"
	OperationGenerate  Operation = "generate"
	OperationCommunity Operation = "community"
	OperationCampaign  Operation = "campaign"
	OperationResearch  Operation = "research"

	// OperationUnknown is returned by ParseOperation for unrecognized input.
	OperationUnknown Operation = ""
)

// endpoints maps each operation to its POST path below the API root.
var endpoints = map[Operation]string{
	OperationAnalyze:   "/github/analyze",
	OperationGenerate:  "/content/generate",
	OperationCommunity: "/community/engage",
	OperationCampaign:  "/marketing/comprehensive",
	OperationResearch:  "/research/enhanced",
}

// APIRoot is the versioned path the backend mounts its API under.
const APIRoot = "/api/v1"

// StatusPath is the health probe path below the API root.
const StatusPath = "/status"

// Operations returns the known operations in menu order.
func Operations() []Operation {
	return []Operation{
		OperationAnalyze,
		OperationGenerate,
		OperationCommunity,
		OperationCampaign,
		OperationResearch,
	}
}

// ParseOperation normalizes a user-supplied operation name.
func ParseOperation(value string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(value)))
	if !op.Known() {
		return OperationUnknown, fmt.Errorf("unknown operation: %q", value)
	}
	return op, nil
}

// Known reports whether the operation is part of the closed set.
func (o Operation) Known() bool {
	_, ok := endpoints[o]
	return ok
}

// Endpoint returns the API path for the operation.
func (o Operation) Endpoint() (string, bool) {
	path, ok := endpoints[o]
	return path, ok
}

func (o Operation) String() string {
	return string(o)
}
