package houghlite

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// pdgCharges is the static table of electric charges in units of e keyed by
// PDG particle ID
var pdgCharges = map[int]float64{
	// gauge bosons
	22:  0,  // photon
	23:  0,  // Z boson
	24:  1,  // W+
	-24: -1, // W-
	21:  0,  // gluon

	// leptons
	11:  -1, // e-
	-11: 1,  // e+
	12:  0,  // nu_e
	-12: 0,  // nu_e bar
	13:  -1, // mu-
	-13: 1,  // mu+
	14:  0,  // nu_mu
	-14: 0,  // nu_mu bar
	15:  -1, // tau-
	-15: 1,  // tau+
	16:  0,  // nu_tau
	-16: 0,  // nu_tau bar

	// quarks
	1:  -1.0 / 3.0, // d
	-1: 1.0 / 3.0,  // d bar
	2:  2.0 / 3.0,  // u
	-2: -2.0 / 3.0, // u bar
	3:  -1.0 / 3.0, // s
	-3: 1.0 / 3.0,  // s bar
	4:  2.0 / 3.0,  // c
	-4: -2.0 / 3.0, // c bar
	5:  -1.0 / 3.0, // b
	-5: 1.0 / 3.0,  // b bar
	6:  2.0 / 3.0,  // t
	-6: -2.0 / 3.0, // t bar

	// light mesons
	111:  0,  // pi0
	211:  1,  // pi+
	-211: -1, // pi-
	113:  0,  // rho0
	213:  1,  // rho+
	-213: -1, // rho-
	221:  0,  // eta
	331:  0,  // eta'
	130:  0,  // K_L0
	310:  0,  // K_S0
	311:  0,  // K0
	-311: 0,  // K0 bar
	321:  1,  // K+
	-321: -1, // K-

	// charmed mesons
	411:  1,  // D+
	-411: -1, // D-
	421:  0,  // D0
	-421: 0,  // D0 bar

	// bottom mesons
	511:  0,  // B0
	-511: 0,  // B0 bar
	521:  1,  // B+
	-521: -1, // B-

	// baryons
	2212:  1,  // proton
	-2212: -1, // antiproton
	2112:  0,  // neutron
	-2112: 0,  // antineutron
	3122:  0,  // Lambda
	-3122: 0,  // Lambda bar
	3222:  1,  // Sigma+
	-3222: -1, // Sigma+ bar
	3212:  0,  // Sigma0
	-3212: 0,  // Sigma0 bar
	3112:  -1, // Sigma-
	-3112: 1,  // Sigma- bar
	3312:  -1, // Xi-
	-3312: 1,  // Xi- bar
	3322:  0,  // Xi0
	-3322: 0,  // Xi0 bar
}

// ChargeLookup maps PDG particle ID's to electric charge signs.  A single
// instance is constructed at process start and passed to consumers.
// Registration of additional ID's is serialized so a parallelized
// orchestrator can register concurrently with last-write-wins semantics.
type ChargeLookup struct {
	mu         sync.RWMutex
	table      map[int]float64
	useDefault bool
	defCharge  float64
}

// NewChargeLookup returns a ChargeLookup seeded with the static PDG charge
// table.  Unknown ID's fail with ErrUnknownParticle until a default charge
// is configured with SetDefault
func NewChargeLookup() *ChargeLookup {

	table := make(map[int]float64, len(pdgCharges))

	for id, q := range pdgCharges {
		table[id] = q
	}

	return &ChargeLookup{
		table: table,
	}
}

// SetDefault configures the charge returned for ID's absent from the table,
// turning unknown lookups from errors into the given value
func (c *ChargeLookup) SetDefault(charge float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.useDefault = true
	c.defCharge = charge
}

// Register adds or replaces the charge entry for the given PDG ID
func (c *ChargeLookup) Register(pdg int, charge float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.table[pdg] = charge
}

// Charge returns the electric charge for the given PDG ID.  An ID missing
// from the table falls back to negating the charge of its antiparticle when
// that is known, then to the configured default charge, and otherwise fails
// with ErrUnknownParticle
func (c *ChargeLookup) Charge(pdg int) (float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if q, ok := c.table[pdg]; ok {
		return q, nil
	}

	// antiparticle ID's negate the particle charge
	if pdg < 0 {
		if q, ok := c.table[-pdg]; ok {
			return -q, nil
		}
	}

	if c.useDefault {
		return c.defCharge, nil
	}

	return 0, fmt.Errorf("%w: PDG ID %d", ErrUnknownParticle, pdg)
}

// Charges returns the charges for a list of PDG ID's.  ID's that cannot be
// resolved are reported as zero, matching the safe lookup used when building
// track records in bulk
func (c *ChargeLookup) Charges(ids []int) []float64 {

	charges := make([]float64, len(ids))

	for i, id := range ids {
		q, err := c.Charge(id)

		if err != nil {
			q = 0
		}

		charges[i] = q
	}

	return charges
}

// LoadChargesFile registers additional PDG ID to charge pairs read from the
// given text file.  It should contain one "pdg charge" pair per line, with
// blank lines and lines starting with # skipped
func (c *ChargeLookup) LoadChargesFile(file string) error {

	// open the file
	f, err := os.Open(file)

	if err != nil {
		return fmt.Errorf("error opening file: %w", err)
	}

	defer f.Close()

	// create a scanner to read the file.
	scanner := bufio.NewScanner(f)
	lineNum := 0

	// read and parse each line
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)

		if len(fields) != 2 {
			return fmt.Errorf("line %d: expected \"pdg charge\", got %q",
				lineNum, line)
		}

		pdg, err := strconv.Atoi(fields[0])

		if err != nil {
			return fmt.Errorf("line %d: bad PDG ID: %w", lineNum, err)
		}

		charge, err := strconv.ParseFloat(fields[1], 64)

		if err != nil {
			return fmt.Errorf("line %d: bad charge: %w", lineNum, err)
		}

		c.Register(pdg, charge)
	}

	// check for errors during scanning
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}

	return nil
}
