// Package dataset loads training samples from CSV and prepares them for the
// trainer.
package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

type Line struct {
	Inputs  []float64
	Targets []float64
}
type Lines []Line

// mnistClasses is the number of digit labels in an MNIST CSV.
const mnistClasses = 10

// GetLinesMNIST reads an MNIST CSV: the first value of a record is the label,
// the remaining inputNum values are pixel densities in [0, 255]. Targets are
// one-hot with 0.01/0.99 levels.
func GetLinesMNIST(reader io.Reader, inputNum int) (Lines, error) {
	var lines Lines
	r := csv.NewReader(bufio.NewReader(reader))
	r.FieldsPerRecord = inputNum + 1
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return lines, fmt.Errorf("reading MNIST record: %w", err)
		}

		inputs := make([]float64, inputNum)
		for i := range inputs {
			x, err := strconv.ParseFloat(record[i+1], 64)
			if err != nil {
				return lines, fmt.Errorf("parsing pixel: %w", err)
			}
			inputs[i] = (x / 255.0 * 0.99) + 0.01
		}

		label, err := strconv.Atoi(record[0])
		if err != nil {
			return lines, fmt.Errorf("parsing label: %w", err)
		}
		if label < 0 || label >= mnistClasses {
			return lines, fmt.Errorf("label %d out of range", label)
		}
		targets := make([]float64, mnistClasses)
		for i := range targets {
			targets[i] = 0.01
		}
		targets[label] = 0.99

		lines = append(lines, Line{
			Inputs:  inputs,
			Targets: targets,
		})
	}

	return lines, nil
}

// GetLines reads one sample per line: inputNum inputs followed by outputNum
// targets, comma separated. Blank lines are skipped.
func GetLines(reader io.Reader, inputNum, outputNum int) (Lines, error) {
	scanner := bufio.NewScanner(reader)
	var lines Lines
	var lineNum int
	for scanner.Scan() {
		lineNum++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		splits := strings.Split(text, ",")
		if len(splits) != inputNum+outputNum {
			return lines, errInvalidLine{
				lineNum:  lineNum,
				splits:   len(splits),
				expected: inputNum + outputNum,
			}
		}
		inputs := make([]float64, inputNum)
		targets := make([]float64, outputNum)

		for i, split := range splits {
			num, err := strconv.ParseFloat(strings.TrimSpace(split), 64)
			if i < inputNum {
				if err != nil {
					return lines, fmt.Errorf("parsing input at line %d: %w", lineNum, err)
				}
				inputs[i] = num
			} else {
				if err != nil {
					return lines, fmt.Errorf("parsing target at line %d: %w", lineNum, err)
				}
				targets[i-inputNum] = num
			}
		}
		lines = append(lines, Line{
			Inputs:  inputs,
			Targets: targets,
		})
	}
	if err := scanner.Err(); err != nil {
		return lines, fmt.Errorf("reading samples: %w", err)
	}
	return lines, nil
}

type errInvalidLine struct {
	lineNum  int
	splits   int
	expected int
}

func (e errInvalidLine) Error() string {
	return fmt.Sprintf("at line %d, expected %d values, got %d",
		e.lineNum, e.expected, e.splits)
}

/*------------------------------------------------------------------------------------------------------------------------*/

// NormalizeLines standardizes every input feature with the given per-feature
// mean and standard deviation. Features with zero deviation are only centered.
func NormalizeLines(lines Lines, std []float64, mean []float64) Lines {
	normalizedLines := make(Lines, len(lines))
	for i, line := range lines {
		normalizedInputs := make([]float64, len(line.Inputs))
		for j, x := range line.Inputs {
			normalizedInputs[j] = x - mean[j]
			if std[j] != 0 {
				normalizedInputs[j] /= std[j]
			}
		}

		normalizedLines[i] = Line{
			Inputs:  normalizedInputs,
			Targets: line.Targets,
		}
	}
	return normalizedLines
}

// column gathers input feature j across all lines.
func column(lines Lines, j int) []float64 {
	col := make([]float64, len(lines))
	for i, line := range lines {
		col[i] = line.Inputs[j]
	}
	return col
}

func CalculateMean(lines Lines) []float64 {
	if len(lines) == 0 {
		return nil
	}

	mean := make([]float64, len(lines[0].Inputs))
	for j := range mean {
		mean[j] = stat.Mean(column(lines, j), nil)
	}
	return mean
}

// CalculateStdDev returns the population standard deviation of every input
// feature.
func CalculateStdDev(lines Lines) []float64 {
	if len(lines) == 0 {
		return nil
	}

	stdDev := make([]float64, len(lines[0].Inputs))
	for j := range stdDev {
		_, stdDev[j] = stat.PopMeanStdDev(column(lines, j), nil)
	}
	return stdDev
}

// LineSplitter returns batch number iterationNum of size batchSize, the last
// batch possibly shorter. Out of range batches are empty.
func LineSplitter(batchSize, iterationNum int, lines Lines) Lines {
	start := batchSize * iterationNum
	end := batchSize * (iterationNum + 1)

	if start < 0 || start >= len(lines) || end <= start {
		return Lines{}
	}

	if end > len(lines) {
		end = len(lines)
	}

	return lines[start:end]
}
