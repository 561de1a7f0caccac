// Package equity provides a set of functions and types for tracking
// employee equity compensation. It is designed to be local-first and
// auditable, keeping grants in a human-readable, version-controllable
// file the user fully controls.
//
// The core functionalities include:
//   - Vesting Schedules: Generating the complete vesting calendar of RSU
//     and stock options grants, including cliffs and early termination.
//   - ESPP Simulation: Replaying the 6-month purchase cycles of an
//     employee stock purchase plan, with currency conversion at dated
//     exchange rates and discounted purchase prices.
//   - Valuation: A stateless engine that values vested and unvested
//     units against recorded market prices and aggregates them per
//     symbol, including intrinsic value of options.
//   - Data Persistence: Handling the encoding and decoding of grants and
//     market data to and from JSONL files.
//
// This package serves as the foundational logic for the `eqc`
// command-line tool.
package equity
