package gcpinventory

import (
	gcpcompute "github.com/elC0mpa/cloud-cost-doctor/service/gcp/compute"
)

type service struct {
	computeService gcpcompute.ComputeService
}
