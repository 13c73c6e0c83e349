// Package bls talks to the BLS public timeseries API.
package bls

import "macrostat/internal/series"

const statusSucceeded = "REQUEST_SUCCEEDED"

// request mirrors the POST body of /publicAPI/v2/timeseries/data/.
// Years travel as strings, as the API demands.
type request struct {
	SeriesID        []string `json:"seriesid"`
	StartYear       string   `json:"startyear"`
	EndYear         string   `json:"endyear"`
	RegistrationKey string   `json:"registrationkey,omitempty"`
}

// Response is the decoded payload of one range request. A payload
// without the Results key decodes to an empty Series slice, which the
// caller treats as "no usable data" rather than a failure.
type Response struct {
	Status   string
	Messages []string
	Series   []series.Block
}

func (r Response) Succeeded() bool { return r.Status == statusSucceeded }

func (r Response) Empty() bool { return len(r.Series) == 0 }
