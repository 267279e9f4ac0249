// Package report renders diagnostic results, issue catalogs and batch
// reports for the terminal or for machines.
//
// Three formats are supported. [FormatText] is colorized when the writer is
// a terminal and shows result details as indented YAML. [FormatJSON] and
// [FormatYAML] emit the same structures the doctor package defines, so the
// output can be fed back into other tooling.
//
//	r := report.NewReporter(os.Stdout, report.FormatText)
//	if err := r.Result(ir); err != nil {
//		return err
//	}
package report
