package v1

import (
	"errors"
	"io/fs"
	"net/http"
	"os"

	"github.com/vmunix/renamarr/internal/checksum"
	"github.com/vmunix/renamarr/internal/importer"
	"github.com/vmunix/renamarr/internal/jobs"
	"github.com/vmunix/renamarr/internal/metadata"
	"github.com/vmunix/renamarr/pkg/release"
)

func (s *Server) parse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	info := release.Parse(req.Filename)
	tech := release.ParseTech(req.Filename)
	writeJSON(w, http.StatusOK, parseResponse{
		Filename: req.Filename,
		Info:     *info,
		Tech: techResponse{
			Resolution: tech.Resolution.String(),
			Source:     tech.Source.String(),
			Codec:      tech.Codec.String(),
			Audio:      tech.Audio.String(),
			Channels:   tech.Channels,
			BitDepth:   tech.BitDepth,
		},
	})
}

func (s *Server) match(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	resp, err := s.deps.Runner.Match(r.Context(), jobs.MatchRequest{
		Files:            req.Files,
		DataSource:       metadata.DataSource(req.DataSource),
		NamingScheme:     req.NamingScheme,
		Language:         req.Language,
		ExtractMediaInfo: req.ExtractMediaInfo,
	})
	if err != nil {
		writeRunnerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) rename(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	resp, err := s.deps.Runner.Rename(r.Context(), req.toJobRequest())
	if err != nil {
		writeRunnerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	results, err := s.deps.Searcher.Search(r.Context(), req.Query, req.Year, metadata.MediaType(req.Type), req.Language)
	if err != nil {
		writeRunnerError(w, err)
		return
	}
	if results == nil {
		results = []metadata.SearchResult{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Results: results, Query: req.Query, Total: len(results)})
}

func (s *Server) scan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	st, err := os.Stat(req.Directory)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !st.IsDir()) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Directory not found: "+req.Directory)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "SCAN_ERROR", err.Error())
		return
	}

	recursive := req.Recursive == nil || *req.Recursive
	files, err := importer.Scan(req.Directory, recursive, req.Extensions)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "SCAN_ERROR", err.Error())
		return
	}
	if files == nil {
		files = []importer.ScannedFile{}
	}
	writeJSON(w, http.StatusOK, scanResponse{Directory: req.Directory, Files: files, Count: len(files)})
}

func (s *Server) checksum(w http.ResponseWriter, r *http.Request) {
	var req checksumRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	algo := checksum.Algorithm(req.Algorithm)
	if algo == "" {
		algo = checksum.DefaultAlgorithm
	}
	writeJSON(w, http.StatusOK, checksumResponse{
		Results:   checksum.Files(req.Files, algo, req.SaveSFV),
		Algorithm: algo,
	})
}
