//
// web service that accepts a spreadsheet of exam questions and tags each
// question's learning objectives with their canonical LO codes.
// codes are found by approximate text matching against a reference
// LO bank (Foundational or Preparatory); the tagged questions are then
// copied into the fixed question template and handed back as
// <fileName>_Processed.xlsx for downstream use.
//
package otflocode
