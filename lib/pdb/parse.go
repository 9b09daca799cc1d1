// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package pdb

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// parser carries the state of one Parse run. Column helpers use the
// 1-based positions of the PDB format specification so the code reads
// against the format tables directly.
type parser struct {
	structure  *Structure
	line       string
	lineNumber int
	model      int
}

// Parse reads PDB records from r and returns the assembled structure.
// Only the first model contributes atoms; alternate locations other
// than ' ' and 'A' are dropped. A source with no atom records at all
// is rejected.
func Parse(r io.Reader) (*Structure, error) {
	p := &parser{
		structure: &Structure{},
		model:     1,
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.lineNumber++
		p.line = scanner.Text()
		if err := p.parseLine(); err != nil {
			return nil, fmt.Errorf("line %d: %w", p.lineNumber, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read structure: %w", err)
	}

	if len(p.structure.Chains) == 0 {
		return nil, fmt.Errorf("no atom records found: not a PDB structure")
	}

	return p.structure, nil
}

// ParseFile reads a structure from a file path. Files ending in .gz
// are decompressed transparently.
func ParseFile(path string) (*Structure, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open structure file: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return Parse(reader)
}

// parseLine dispatches one record by its name columns.
func (p *parser) parseLine() error {
	switch p.cols(1, 6) {
	case "HEADER":
		p.structure.ID = strings.ToUpper(p.cols(63, 66))
	case "TITLE":
		text := p.cols(11, 80)
		if text == "" {
			return nil
		}
		if p.structure.Title == "" {
			p.structure.Title = text
		} else {
			p.structure.Title += " " + text
		}
	case "MODEL":
		number, err := p.atoi(11, 14)
		if err != nil {
			return fmt.Errorf("model number: %w", err)
		}
		p.model = number
	case "ENDMDL":
		// Models after the first are ignored; mark the region so
		// subsequent atom records are skipped until another MODEL.
		p.model = 0
	case "ATOM":
		return p.parseAtom(false)
	case "HETATM":
		return p.parseAtom(true)
	}
	return nil
}

// parseAtom reads one ATOM or HETATM record and appends it to its
// residue, creating chain and residue entries on first sight.
func (p *parser) parseAtom(het bool) error {
	if p.model != 1 {
		return nil
	}

	// Alternate locations: keep the blank and 'A' conformers only, so
	// every atom appears exactly once.
	altLoc := p.at(17)
	if altLoc != ' ' && altLoc != 'A' {
		return nil
	}

	serial, err := p.atoi(7, 11)
	if err != nil {
		return fmt.Errorf("atom serial: %w", err)
	}
	name := p.cols(13, 16)
	residueName := p.cols(18, 20)
	chainID := p.cols(22, 22)
	residueNumber, err := p.atoi(23, 26)
	if err != nil {
		return fmt.Errorf("residue number: %w", err)
	}

	x, err := p.atof(31, 38)
	if err != nil {
		return fmt.Errorf("x coordinate: %w", err)
	}
	y, err := p.atof(39, 46)
	if err != nil {
		return fmt.Errorf("y coordinate: %w", err)
	}
	z, err := p.atof(47, 54)
	if err != nil {
		return fmt.Errorf("z coordinate: %w", err)
	}

	element := p.cols(77, 78)
	if element == "" {
		element = elementFromName(name)
	}

	// Selenomethionine is deposited as HETATM but belongs to the
	// protein polymer.
	if het && residueName == "MSE" {
		het = false
	}

	atom := Atom{
		Serial:        serial,
		Name:          name,
		Element:       strings.ToUpper(element),
		ResidueName:   residueName,
		ResidueNumber: residueNumber,
		Chain:         chainID,
		Het:           het,
		Position:      Vec3{X: x, Y: y, Z: z},
	}

	residue := p.residue(chainID, residueName, residueNumber, het)
	residue.Atoms = append(residue.Atoms, atom)
	return nil
}

// residue finds or appends the residue for an incoming atom. Records
// for one residue are contiguous in well-formed files, so checking the
// tail entry first keeps this linear over the whole parse.
func (p *parser) residue(chainID, name string, number int, het bool) *Residue {
	chain := p.chain(chainID)
	if len(chain.Residues) > 0 {
		last := &chain.Residues[len(chain.Residues)-1]
		if last.Number == number && last.Name == name {
			return last
		}
	}
	chain.Residues = append(chain.Residues, Residue{
		Name:   name,
		Number: number,
		Chain:  chainID,
		Het:    het,
	})
	return &chain.Residues[len(chain.Residues)-1]
}

// chain finds or appends the chain with the given identifier.
func (p *parser) chain(id string) *Chain {
	for index := range p.structure.Chains {
		if p.structure.Chains[index].ID == id {
			return &p.structure.Chains[index]
		}
	}
	p.structure.Chains = append(p.structure.Chains, Chain{ID: id})
	return &p.structure.Chains[len(p.structure.Chains)-1]
}

// cols returns the trimmed text of the 1-based inclusive column range,
// tolerating lines shorter than the requested span.
func (p *parser) cols(start, end int) string {
	from, to := start-1, end
	if from < 0 || from >= len(p.line) {
		return ""
	}
	if to > len(p.line) {
		to = len(p.line)
	}
	return strings.TrimSpace(p.line[from:to])
}

// at returns the byte at the 1-based column, or ' ' when the line is
// shorter.
func (p *parser) at(column int) byte {
	index := column - 1
	if index < 0 || index >= len(p.line) {
		return ' '
	}
	return p.line[index]
}

func (p *parser) atoi(start, end int) (int, error) {
	return strconv.Atoi(p.cols(start, end))
}

func (p *parser) atof(start, end int) (float64, error) {
	return strconv.ParseFloat(p.cols(start, end), 64)
}

// elementFromName derives an element symbol from an atom name for
// files that leave the element columns blank: the first letter after
// stripping leading digits. Hydrogens named like "1HB" resolve to "H",
// which is all the distance layer needs.
func elementFromName(name string) string {
	for _, r := range name {
		if r >= '0' && r <= '9' {
			continue
		}
		return string(r)
	}
	return ""
}
