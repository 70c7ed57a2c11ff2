package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/poupanca/poupanca/pkg/plan"
	log "github.com/sirupsen/logrus"
)

type CsvEntriesRenderer struct {
}

func NewCsvEntriesRenderer() *CsvEntriesRenderer {
	return &CsvEntriesRenderer{}
}

// RenderEntries renders a plan's monthly schedule as CSV: one row per
// month with its planned value and the saved flag.
func (t *CsvEntriesRenderer) RenderEntries(p plan.SavingsPlan) (string, error) {
	data := make([][]string, 0, len(p.Entries)+1)
	data = append(data, []string{"Mes", "Valor", "Poupado"})
	for _, e := range p.Entries {
		saved := "Não"
		if e.IsSaved {
			saved = "Sim"
		}
		data = append(data, []string{strconv.Itoa(e.Month), e.Value.String(), saved})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
