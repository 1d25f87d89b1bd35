// Package server exposes the outcome of a bring-up over HTTP.  Every route
// is a read-only GET; the report is never modified after it is served.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/nasa-jpl/mxfe/bench"
	"github.com/nasa-jpl/mxfe/bringup"
	"github.com/nasa-jpl/mxfe/mxfe"
	"github.com/nasa-jpl/mxfe/stream"
)

// RouteTable maps URL endpoints to handlers
type RouteTable map[string]http.HandlerFunc

// Endpoints lists the endpoints in a RouteTable (the keys), sorted
func (rt RouteTable) Endpoints() []string {
	routes := make([]string, 0, len(rt))
	for k := range rt {
		routes = append(routes, k)
	}
	sort.Strings(routes)
	return routes
}

// Bind binds every route as a GET on r
func (rt RouteTable) Bind(r chi.Router) {
	for str, meth := range rt {
		r.Get(str, meth)
	}
}

// Status is the summary of a run
type Status struct {
	RunID        string            `json:"runID"`
	Started      time.Time         `json:"started"`
	Finished     time.Time         `json:"finished"`
	Ready        int               `json:"ready"`
	Counts       mxfe.Counts       `json:"counts"`
	Instances    []*mxfe.Instance  `json:"instances"`
	FailedClocks []string          `json:"failedClocks"`
	Links        []mxfe.LinkStatus `json:"links"`
	Warnings     []string          `json:"warnings"`
	Fatal        string            `json:"fatal,omitempty"`
}

// Streams are the stream endpoints of a run
type Streams struct {
	Rx *stream.Endpoint `json:"rx"`
	Tx *stream.Endpoint `json:"tx"`
}

// Measurement is one benchmark sample as served
type Measurement struct {
	Label      string     `json:"label"`
	Kind       bench.Kind `json:"kind"`
	Ticks      uint32     `json:"ticks"`
	Millis     string     `json:"ms"`
	Degraded   bool       `json:"degraded"`
	Diagnostic string     `json:"diagnostic,omitempty"`
	Error      string     `json:"error,omitempty"`
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Server serves one bring-up report
type Server struct {
	Report *bringup.Report

	RouteTable RouteTable
}

// New returns a server for rep with its routes populated
func New(rep *bringup.Report) *Server {
	s := &Server{Report: rep}
	s.RouteTable = RouteTable{
		"/status":    s.status,
		"/streams":   s.streams,
		"/benchmark": s.benchmark,
	}
	return s
}

// Handler returns a router serving the route table and /endpoints
func (s *Server) Handler() chi.Router {
	root := chi.NewRouter()
	root.Use(middleware.Logger)
	s.RouteTable.Bind(root)
	root.Get("/endpoints", func(w http.ResponseWriter, r *http.Request) {
		respond(w, append(s.RouteTable.Endpoints(), "/endpoints"))
	})
	return root
}

// ListenAndServe serves the report at addr until the listener fails
func (s *Server) ListenAndServe(addr string) error {
	log.Println("now listening for requests at ", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func respond(w http.ResponseWriter, v interface{}) {
	buf, err := json.Marshal(v)
	if err != nil {
		fstr := fmt.Sprintf("error encoding data to json %q", err)
		log.Println(fstr)
		http.Error(w, fstr, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(buf)
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	rep := s.Report
	respond(w, Status{
		RunID:        rep.RunID,
		Started:      rep.Started,
		Finished:     rep.Finished,
		Ready:        rep.Ready(),
		Counts:       rep.Counts,
		Instances:    rep.Instances,
		FailedClocks: rep.FailedClocks,
		Links:        rep.Links,
		Warnings:     rep.Warnings,
		Fatal:        rep.Fatal,
	})
}

func (s *Server) streams(w http.ResponseWriter, r *http.Request) {
	respond(w, Streams{Rx: s.Report.Rx, Tx: s.Report.Tx})
}

func (s *Server) benchmark(w http.ResponseWriter, r *http.Request) {
	out := make([]Measurement, 0, len(s.Report.Samples))
	for _, smp := range s.Report.Samples {
		out = append(out, Measurement{
			Label:      smp.Label,
			Kind:       smp.Kind,
			Ticks:      smp.Ticks,
			Millis:     smp.Millis(),
			Degraded:   smp.Degraded,
			Diagnostic: errString(smp.Diagnostic),
			Error:      errString(smp.Err),
		})
	}
	respond(w, out)
}
